// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"math"
	"sort"

	"github.com/danielhkuo/dealdesk/models"
)

// MonthlyWindow is the number of months the portfolio chart shows.
const MonthlyWindow = 6

// MinBarHeight is the floor, in percent, for a chart bar so empty months
// stay visible.
const MinBarHeight = 4.0

// MonthBucket aggregates the investments of one calendar month.
type MonthBucket struct {
	Key       string   `json:"key"` // YYYY-MM
	Label     string   `json:"label"`
	Count     int      `json:"count"`
	Amount    int64    `json:"amount"`
	Companies []string `json:"companies"`
}

// MonthlyRollup is the chronological window of buckets plus the maxima used
// to scale the chart. Both maxima are at least 1.
type MonthlyRollup struct {
	Buckets   []MonthBucket `json:"buckets"`
	MaxAmount int64         `json:"max_amount"`
	MaxCount  int           `json:"max_count"`
}

// ComputeMonthlyRollup groups investments by UTC year-month and keeps the
// most recent window buckets, oldest first. A window <= 0 keeps every month.
func ComputeMonthlyRollup(investments []models.Investment, window int) MonthlyRollup {
	byKey := make(map[string]*MonthBucket)
	for _, inv := range investments {
		key := MonthKey(inv.InvestmentDate)
		b, ok := byKey[key]
		if !ok {
			b = &MonthBucket{Key: key, Label: MonthLabel(inv.InvestmentDate), Companies: []string{}}
			byKey[key] = b
		}
		b.Count++
		b.Amount += inv.Amount
		b.Companies = append(b.Companies, inv.CompanyName)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if window > 0 && len(keys) > window {
		keys = keys[len(keys)-window:]
	}

	r := MonthlyRollup{Buckets: make([]MonthBucket, 0, len(keys)), MaxAmount: 1, MaxCount: 1}
	for _, k := range keys {
		b := *byKey[k]
		r.Buckets = append(r.Buckets, b)
		r.MaxAmount = max(r.MaxAmount, b.Amount)
		r.MaxCount = max(r.MaxCount, b.Count)
	}
	return r
}

// TotalAmount sums the amounts of the kept buckets.
func (r MonthlyRollup) TotalAmount() int64 {
	var total int64
	for _, b := range r.Buckets {
		total += b.Amount
	}
	return total
}

// TotalCount sums the counts of the kept buckets.
func (r MonthlyRollup) TotalCount() int {
	n := 0
	for _, b := range r.Buckets {
		n += b.Count
	}
	return n
}

// BarHeight returns value as a percentage of maximum, floored at
// MinBarHeight.
func BarHeight(value, maximum int64) float64 {
	if maximum <= 0 {
		return MinBarHeight
	}
	return math.Max(float64(value)/float64(maximum)*100, MinBarHeight)
}
