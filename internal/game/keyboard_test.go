package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRows(t *testing.T) {
	assert.Equal(t, Keyboard{{"a", "b", "c"}, {"d", "e"}}, Rows([]string{"a", "b", "c", "d", "e"}, 3))
	assert.Equal(t, Keyboard{{"a"}, {"b"}}, Rows([]string{"a", "b"}, 0))
	assert.Nil(t, Rows(nil, 3))
}

func TestStripMarker(t *testing.T) {
	tests := map[string]string{
		"⭐ НСЦ":                      "НСЦ",
		"\u2b50\ufe0f НСЦ":           "НСЦ",
		markFavourite("Иванов Иван"): "Иванов Иван",
		"  Лужники ":                 "Лужники",
		"3:1":                        "3:1",
		"15.01.24":                   "15.01.24",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripMarker(in), in)
	}
}
