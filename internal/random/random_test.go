package random

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLetters(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		letters, err := Letters(20)
		require.NoError(t, err)
		require.Len(t, letters, 20)
		require.False(t, seen[letters], "expected unique letters")
		seen[letters] = true
	}
}

func TestPercent(t *testing.T) {
	for i := 0; i < 1000; i++ {
		roll := Percent()
		require.GreaterOrEqual(t, roll, 0.0)
		require.Less(t, roll, 100.0)
	}
}
