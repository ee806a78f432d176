// file: internals/helpers/circulation_test.go
package helper

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFineAt(t *testing.T) {
	due := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"belum jatuh tempo", due.Add(-time.Hour), 0},
		{"tepat jatuh tempo", due, 0},
		{"telat 1 jam = 1 hari", due.Add(time.Hour), 0.50},
		{"telat 23 jam = 1 hari", due.Add(23 * time.Hour), 0.50},
		{"telat 25 jam = 2 hari", due.Add(25 * time.Hour), 1.00},
		{"telat 7 hari", due.Add(7 * 24 * time.Hour), 3.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateFineAt(tt.now, due, DefaultFinePerDay))
		})
	}
}

func TestCalculateFineAt_RoundsToTwoDecimals(t *testing.T) {
	due := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	got := CalculateFineAt(due.Add(3*24*time.Hour), due, 0.333)
	assert.Equal(t, 1.0, got)
}

func TestCalculateDueDate(t *testing.T) {
	due := CalculateDueDate(14)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), due, time.Minute)
}

func TestIsValidISBN(t *testing.T) {
	valid := []string{
		"0306406152",        // ISBN-10
		"0-306-40615-2",     // ISBN-10 dengan strip
		"097522980X",        // ISBN-10 cek digit X
		"9780306406157",     // ISBN-13
		"978-0-306-40615-7", // ISBN-13 dengan strip
	}
	for _, isbn := range valid {
		assert.True(t, IsValidISBN(isbn), "harus valid: %s", isbn)
	}

	invalid := []string{
		"",
		"0306406153",    // cek digit salah
		"9780306406158", // cek digit salah
		"123",
		"97803064061577", // kepanjangan
		"ABCDEFGHIJ",
	}
	for _, isbn := range invalid {
		assert.False(t, IsValidISBN(isbn), "harus invalid: %s", isbn)
	}
}

func TestGenerateBarcode(t *testing.T) {
	barcode := GenerateBarcode()
	assert.True(t, strings.HasPrefix(barcode, "LIB-"))
	assert.Equal(t, barcode, strings.ToUpper(barcode))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateBarcode()] = true
	}
	assert.Greater(t, len(seen), 1)
}
