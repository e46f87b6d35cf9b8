// Package money renders amounts in the smallest currency unit as vi-VN text.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySuffix = "đ"

var printer = message.NewPrinter(language.Vietnamese)

// Format groups thousands with dots and appends the dong sign: 29.990.000đ.
func Format(amount int64) string {
	return printer.Sprintf("%d", amount) + currencySuffix
}

func FormatShipping(fee int64) string {
	if fee == 0 {
		return "Miễn phí"
	}
	return Format(fee)
}
