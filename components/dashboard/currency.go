package dashboard

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount as Indonesian Rupiah with no fractional
// digits, e.g. 1500000 -> "Rp 1.500.000".
func FormatRupiah(amount float64) string {
	return rupiahPrinter.Sprintf("Rp %v", number.Decimal(math.Round(amount), number.MaxFractionDigits(0)))
}

// FormatCount renders a plain count with Indonesian digit grouping.
func FormatCount(count int) string {
	return rupiahPrinter.Sprintf("%v", number.Decimal(count))
}
