package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocatorFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		locator, err := NewLocator()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{4}-[A-Z0-9]{4}$`, locator)
	}
}

func TestNewLocatorIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		locator, err := NewLocator()
		require.NoError(t, err)
		assert.False(t, seen[locator], "duplicate locator %s", locator)
		seen[locator] = true
	}
}
