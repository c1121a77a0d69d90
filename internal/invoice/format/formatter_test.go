package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	issuedAt := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)

	out, err := Number(DefaultNumberTemplate, issuedAt, 42)
	assert.NoError(t, err)
	assert.Equal(t, "INV-20260307-00042", out)

	out, err = Number("{YY}{MM}-{SEQ}", issuedAt, 7)
	assert.NoError(t, err)
	assert.Equal(t, "2603-7", out)
}

func TestNumberRejectsBadInput(t *testing.T) {
	issuedAt := time.Now()

	_, err := Number("", issuedAt, 1)
	assert.Error(t, err)

	_, err = Number(DefaultNumberTemplate, issuedAt, 0)
	assert.Error(t, err)

	_, err = Number("INV-{NOPE}", issuedAt, 1)
	assert.Error(t, err)
}

func TestCommas(t *testing.T) {
	assert.Equal(t, "0.00", Commas(0))
	assert.Equal(t, "271.40", Commas(271.4))
	assert.Equal(t, "1,234.56", Commas(1234.56))
	assert.Equal(t, "1,234,567.89", Commas(1234567.89))
	assert.Equal(t, "-28.60", Commas(-28.6))
	assert.Equal(t, "-1,000.00", Commas(-1000))
}
