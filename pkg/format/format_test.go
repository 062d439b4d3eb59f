package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "Rp 0", Currency(0))
	assert.Equal(t, "Rp 500", Currency(500))
	assert.Equal(t, "Rp 1.500.000", Currency(1500000))
	assert.Equal(t, "-Rp 40.000", Currency(-40000))
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2024", Date(d))
	assert.Equal(t, "07/03/2024 10:30:00", DateTime(d))
}
