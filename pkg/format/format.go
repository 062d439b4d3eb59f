package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// Jakarta is the business timezone. Document dates are stamped in it and
// every date-range bound is parsed in it, so a day boundary means the same
// instant everywhere.
var Jakarta = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}()

// Currency renders a rupiah amount with Indonesian digit grouping,
// e.g. 1500000 -> "Rp 1.500.000". Negative amounts keep the sign in
// front of the symbol.
func Currency(amount int64) string {
	if amount < 0 {
		return printer.Sprintf("-Rp %v", number.Decimal(-amount))
	}
	return printer.Sprintf("Rp %v", number.Decimal(amount))
}

// Date renders a date as DD/MM/YYYY
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime renders a timestamp as DD/MM/YYYY HH:MM:SS, used by CSV exports
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
