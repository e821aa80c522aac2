package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScore(t *testing.T) {
	accepted := map[string]string{
		"3:1":    "3:1",
		" 3 : 1": "3:1",
		"3-2":    "3:2",
		"0 - 3":  "0:3",
	}
	for in, want := range accepted {
		got, ok := NormalizeScore(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"5:5", "3:3", "2:1", "3:4", "три один", ""} {
		_, ok := NormalizeScore(bad)
		assert.False(t, ok, bad)
	}
}

func TestScoreRoundTrip(t *testing.T) {
	for _, score := range Scores {
		r1, r2, err := ParseScore(score)
		require.NoError(t, err)
		assert.NotEqual(t, r1, r2)
		assert.Equal(t, score, FormatScore(r1, r2))
	}
}

func TestParseScore_Invalid(t *testing.T) {
	for _, bad := range []string{"31", "a:1", "3:b"} {
		_, _, err := ParseScore(bad)
		assert.Error(t, err, bad)
	}
}
