// Package format derives display-only values used by the page templates.
package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const NotAvailable = "N/A"

// Accepted birth/contract date layouts, tried in order.
var dateLayouts = []string{"2006-1-2", "2/1/2006"}

var (
	currencyNoise = regexp.MustCompile(`[€$£R\s]`)
	numericRun    = regexp.MustCompile(`[\d.]+`)
)

// ParseDate accepts YYYY-MM-DD or DD/MM/YYYY.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// CalculateAge returns completed years between birthDate and now.
func CalculateAge(birthDate string, now time.Time) (int, bool) {
	birth, ok := ParseDate(birthDate)
	if !ok {
		return 0, false
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// FormatDate renders a parseable date as DD/MM/YYYY and leaves anything else untouched.
func FormatDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NotAvailable
	}
	parsed, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return parsed.Format("02/01/2006")
}

// FormatCurrency abbreviates a market value: 1.5M, 15M, 700k, 500.
func FormatCurrency(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == NotAvailable {
		return NotAvailable
	}

	upper := strings.ToUpper(value)
	if (strings.Contains(upper, "M") || strings.Contains(upper, "K")) && utf8.RuneCountInString(value) <= 10 {
		return value
	}

	cleaned := currencyNoise.ReplaceAllString(value, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	match := numericRun.FindString(cleaned)
	if match == "" {
		return value
	}
	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return value
	}

	return abbreviate(amount)
}

// FormatAmount abbreviates a numeric market value.
func FormatAmount(amount float64) string {
	if amount < 0 {
		return NotAvailable
	}
	return abbreviate(amount)
}

func abbreviate(amount float64) string {
	switch {
	case amount >= 1_000_000:
		millions := amount / 1_000_000
		if millions >= 10 {
			return strconv.Itoa(int(millions)) + "M"
		}
		return trimDecimal(strconv.FormatFloat(millions, 'f', 1, 64)) + "M"
	case amount >= 1_000:
		thousands := amount / 1_000
		if thousands >= 10 {
			return strconv.Itoa(int(thousands)) + "k"
		}
		return strconv.FormatFloat(thousands, 'f', 0, 64) + "k"
	default:
		if amount == float64(int64(amount)) {
			return strconv.FormatInt(int64(amount), 10)
		}
		return strconv.FormatFloat(amount, 'f', 1, 64)
	}
}

func trimDecimal(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
