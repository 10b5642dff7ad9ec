// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders whole dollars with thousands separators, e.g.
// "$250,000".
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

// FormatCurrencyCompact renders an amount as "$2.5M", "$250K" or "$900".
func FormatCurrencyCompact(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	if amount < 1_000 {
		return fmt.Sprintf("%s$%d", sign, amount)
	}

	// Round to one decimal before picking the unit so 999,999 reads $1M.
	v := roundTenth(float64(amount) / 1_000)
	if v < 1_000 {
		return sign + "$" + humanize.Ftoa(v) + "K"
	}
	return sign + "$" + humanize.Ftoa(roundTenth(float64(amount)/1_000_000)) + "M"
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// MonthKey is the sortable UTC year-month of t, e.g. "2025-01".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// MonthLabel is the display name of t's UTC month, e.g. "January 2025".
func MonthLabel(t time.Time) string {
	return t.UTC().Format("January 2006")
}

// FormatDate renders a calendar date the way list views show it.
func FormatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}
