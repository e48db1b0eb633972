package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2026-9-15", "15-09-2026", "2026-09-15T00:00:00Z", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestValidateReportsFirstViolation(t *testing.T) {
	v := NewValidator()

	type req struct {
		Email  string `validate:"required,email"`
		Guests int    `validate:"min=1"`
	}

	assert.NoError(t, v.Validate(req{Email: "ada@example.com", Guests: 2}))

	err := v.Validate(req{Email: "nope", Guests: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")

	err = v.Validate(req{Email: "ada@example.com", Guests: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Guests")
}
