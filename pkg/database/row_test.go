package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRowAccessors(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	row := Row{
		"name":      "acme",
		"raw":       []byte("bytes"),
		"count":     int64(42),
		"small":     int32(7),
		"float":     float64(3),
		"numeric":   "19",
		"active":    true,
		"flag_text": "t",
		"created":   now,
		"missing":   nil,
	}

	assert.Equal(t, "acme", row.String("name"))
	assert.Equal(t, "bytes", row.String("raw"))
	assert.Equal(t, "", row.String("missing"))

	assert.Equal(t, int64(42), row.Int("count"))
	assert.Equal(t, int64(7), row.Int("small"))
	assert.Equal(t, int64(3), row.Int("float"))
	assert.Equal(t, int64(19), row.Int("numeric"))
	assert.Equal(t, int64(0), row.Int("missing"))

	assert.True(t, row.Bool("active"))
	assert.True(t, row.Bool("flag_text"))
	assert.False(t, row.Bool("missing"))

	assert.Equal(t, now, row.Time("created"))
	assert.True(t, row.Time("missing").IsZero())

	assert.True(t, row.IsNull("missing"))
	assert.True(t, row.IsNull("absent"))
	assert.False(t, row.IsNull("name"))
}

func TestTargetNames(t *testing.T) {
	assert.True(t, Directory().IsDirectory())
	assert.Equal(t, "directory", Directory().String())

	tenant := Tenant("service_plus_acme")
	assert.False(t, tenant.IsDirectory())
	assert.Equal(t, "service_plus_acme", tenant.Database())
	assert.Equal(t, "service_plus_acme", tenant.String())
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"security"`, quoteIdentifier("security"))
	assert.Equal(t, `"odd""name"`, quoteIdentifier(`odd"name`))
}
