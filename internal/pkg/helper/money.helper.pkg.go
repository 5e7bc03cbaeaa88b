package helper

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount groups thousands: FormatAmount(2400, "MMK") == "2,400 MMK".
func FormatAmount(amount int64, currency string) string {
	if currency == "" {
		return amountPrinter.Sprint(number.Decimal(amount))
	}
	return amountPrinter.Sprintf("%v %s", number.Decimal(amount), currency)
}
