package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Scores are the only accepted match results, in keyboard order.
var Scores = []string{"3:0", "3:1", "3:2", "0:3", "1:3", "2:3"}

// NormalizeScore accepts "3:1", "3 : 1" or "3-1" and returns the canonical
// form. ok is false when the result is not one of Scores.
func NormalizeScore(text string) (string, bool) {
	s := strings.Join(strings.Fields(text), "")
	s = strings.ReplaceAll(s, "-", ":")
	for _, score := range Scores {
		if s == score {
			return score, true
		}
	}
	return "", false
}

// ParseScore splits a canonical score into games won by each player.
func ParseScore(score string) (int, int, error) {
	left, right, found := strings.Cut(score, ":")
	if !found {
		return 0, 0, fmt.Errorf("score %q: missing separator", score)
	}
	r1, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("score %q: %w", score, err)
	}
	r2, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("score %q: %w", score, err)
	}
	return r1, r2, nil
}

// FormatScore is the inverse of ParseScore.
func FormatScore(r1, r2 int) string {
	return fmt.Sprintf("%d:%d", r1, r2)
}
