package game

import (
	"strings"
	"unicode"
)

// PreferenceMarker prefixes a user's favourite choices on keyboards.
const PreferenceMarker = "⭐"

// Keyboard is a grid of quick-reply labels.
type Keyboard [][]string

// Rows groups labels into rows of at most perRow.
func Rows(labels []string, perRow int) Keyboard {
	if len(labels) == 0 {
		return nil
	}
	if perRow <= 0 {
		perRow = 1
	}
	rows := make(Keyboard, 0, (len(labels)+perRow-1)/perRow)
	for start := 0; start < len(labels); start += perRow {
		end := start + perRow
		if end > len(labels) {
			end = len(labels)
		}
		row := make([]string, end-start)
		copy(row, labels[start:end])
		rows = append(rows, row)
	}
	return rows
}

func markFavourite(name string) string {
	return PreferenceMarker + " " + name
}

// StripMarker removes decoration added to keyboard labels (the favourite star
// or any other leading emoji) so the remainder can be compared to candidate names.
func StripMarker(label string) string {
	return strings.TrimSpace(strings.TrimLeftFunc(strings.TrimSpace(label), isDecoration))
}

func isDecoration(r rune) bool {
	switch {
	case unicode.IsSpace(r):
		return true
	case unicode.Is(unicode.So, r), unicode.Is(unicode.Sk, r):
		return true
	case r == '\u200d' || (r >= '\ufe00' && r <= '\ufe0f'):
		return true
	}
	return false
}
