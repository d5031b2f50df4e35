// Package format renders amounts and dates the way the dashboard pages show
// them: US English, dollars, long month names.
package format

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidDate is returned by Date for input in no accepted layout.
var ErrInvalidDate = errors.New("invalid date")

var printer = message.NewPrinter(language.AmericanEnglish)

// dateLayouts are tried in order by Date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Currency formats amount as US dollars with two decimals and thousands
// separators: 1234.5 -> "$1,234.50", -3 -> "-$3.00".
func Currency(amount float64) string {
	cents := math.Round(amount * 100)
	sign := ""
	switch {
	case cents < 0:
		sign = "-"
		cents = -cents
	case cents == 0:
		// drop negative zero
		cents = 0
	}
	digits := printer.Sprint(number.Decimal(cents/100,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return sign + "$" + digits
}

// Date formats an ISO date or timestamp as "January 15, 2024". The calendar
// day is taken in the zone carried by the input, UTC when there is none.
func Date(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
