package helper

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Tarif denda default per hari keterlambatan (USD).
const DefaultFinePerDay = 0.50

// CalculateDueDate: jatuh tempo = sekarang + loanDays hari.
func CalculateDueDate(loanDays int) time.Time {
	return time.Now().AddDate(0, 0, loanDays)
}

// CalculateFine menghitung denda sekali di saat pengembalian.
// Hari telat dihitung ceiling (telat 1 jam = 1 hari), hasil dibulatkan 2 desimal.
func CalculateFine(dueDate time.Time, finePerDay float64) float64 {
	return CalculateFineAt(time.Now(), dueDate, finePerDay)
}

func CalculateFineAt(now, dueDate time.Time, finePerDay float64) float64 {
	if !now.After(dueDate) {
		return 0
	}
	daysOverdue := math.Ceil(now.Sub(dueDate).Hours() / 24)
	return math.Round(daysOverdue*finePerDay*100) / 100
}

// GenerateBarcode membuat barcode eksemplar: LIB-<timestamp base36>-<random>.
func GenerateBarcode() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	random := strconv.FormatInt(rand.Int63n(36*36*36*36*36*36), 36)
	return strings.ToUpper(fmt.Sprintf("LIB-%s-%06s", ts, random))
}

// =======================
// VALIDASI ISBN
// =======================

func IsValidISBN(isbn string) bool {
	clean := strings.NewReplacer("-", "", " ", "").Replace(isbn)
	switch len(clean) {
	case 10:
		return isValidISBN10(clean)
	case 13:
		return isValidISBN13(clean)
	}
	return false
}

func isValidISBN10(isbn string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		d := int(isbn[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		sum += d * (10 - i)
	}
	last := isbn[9]
	if last == 'X' || last == 'x' {
		sum += 10
	} else {
		d := int(last - '0')
		if d < 0 || d > 9 {
			return false
		}
		sum += d
	}
	return sum%11 == 0
}

func isValidISBN13(isbn string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		d := int(isbn[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return sum%10 == 0
}
