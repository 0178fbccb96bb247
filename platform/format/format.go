// Package format provides display formatting helpers shared by consumers
// of the CRM core. This is part of the platform layer and contains no
// business logic.
package format

import (
	"net/url"
	"time"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders a monetary amount with its currency symbol and grouped
// digits, e.g. 25000 -> "$25,000.00" for USD. Unknown codes fall back to USD.
func Currency(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return printer.Sprint(currency.NarrowSymbol(unit.Amount(amount)))
}

// Number renders a plain number with locale digit grouping.
func Number(n float64) string {
	return printer.Sprintf("%.0f", n)
}

// Percent renders a 0..1 ratio as a percentage with one decimal.
func Percent(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}

// Date renders a timestamp as an ISO calendar date.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// CapitalizeFirst upper-cases the first rune of s.
func CapitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// BuildURL joins a base URL with an endpoint and appends query parameters.
func BuildURL(base, endpoint string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	u = u.ResolveReference(ref)

	q := u.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
