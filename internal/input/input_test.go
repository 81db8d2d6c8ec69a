package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/moto-maintenance/internal/models"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024/01/01", "24-01-01", "2024-1-1", "2023-02-29", "2024-13-01", "yesterday"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestParseMileage(t *testing.T) {
	n, err := ParseMileage("12500")
	require.NoError(t, err)
	assert.Equal(t, 12500, n)

	n, err = ParseMileage(" 0\n")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = ParseMileage("12,500")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseMileage("1.5")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseMileage("-3")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, models.ErrNegativeMileage)
}
