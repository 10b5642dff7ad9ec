// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/danielhkuo/dealdesk/models"
)

// PortfolioSort selects the portfolio ordering.
type PortfolioSort string

const (
	PortfolioDateNewest PortfolioSort = "date-newest"
	PortfolioDateOldest PortfolioSort = "date-oldest"
	PortfolioNameAZ     PortfolioSort = "name-az"
	PortfolioNameZA     PortfolioSort = "name-za"
	PortfolioAmountHigh PortfolioSort = "amount-high"
	PortfolioAmountLow  PortfolioSort = "amount-low"
)

var PortfolioSorts = []PortfolioSort{
	PortfolioDateNewest, PortfolioDateOldest,
	PortfolioNameAZ, PortfolioNameZA,
	PortfolioAmountHigh, PortfolioAmountLow,
}

func (s PortfolioSort) Valid() bool {
	return slices.Contains(PortfolioSorts, s)
}

// ParsePortfolioSort converts a raw key; the empty string means date-newest.
func ParsePortfolioSort(raw string) (PortfolioSort, error) {
	if raw == "" {
		return PortfolioDateNewest, nil
	}
	s := PortfolioSort(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: portfolio sort %q", models.ErrInvalidEnumValue, raw)
	}
	return s, nil
}

// SearchAndSortPortfolio filters investments by company name, any founder
// name or the short description, then sorts stably by key.
func SearchAndSortPortfolio(investments []models.Investment, query string, key PortfolioSort) ([]models.Investment, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: portfolio sort %q", models.ErrInvalidEnumValue, key)
	}

	m := newMatcher(query)
	out := make([]models.Investment, 0, len(investments))
	for _, inv := range investments {
		fields := []*string{&inv.CompanyName, inv.ShortDescription}
		for i := range inv.Founders {
			fields = append(fields, &inv.Founders[i].Name)
		}
		if m.matches(fields...) {
			out = append(out, inv)
		}
	}

	col := newNameCollator()
	var order func(a, b models.Investment) int
	switch key {
	case PortfolioDateNewest:
		order = func(a, b models.Investment) int {
			return b.InvestmentDate.Compare(a.InvestmentDate)
		}
	case PortfolioDateOldest:
		order = func(a, b models.Investment) int {
			return a.InvestmentDate.Compare(b.InvestmentDate)
		}
	case PortfolioNameAZ:
		order = func(a, b models.Investment) int {
			return col.CompareString(a.CompanyName, b.CompanyName)
		}
	case PortfolioNameZA:
		order = func(a, b models.Investment) int {
			return col.CompareString(b.CompanyName, a.CompanyName)
		}
	case PortfolioAmountHigh:
		order = func(a, b models.Investment) int {
			return cmp.Compare(b.Amount, a.Amount)
		}
	case PortfolioAmountLow:
		order = func(a, b models.Investment) int {
			return cmp.Compare(a.Amount, b.Amount)
		}
	}

	slices.SortStableFunc(out, order)
	return out, nil
}

// PortfolioStats summarizes the investment collection.
type PortfolioStats struct {
	TotalInvestments int   `json:"total_investments"`
	TotalInvested    int64 `json:"total_invested"`
	AverageCheck     int64 `json:"average_check"`
}

// ComputePortfolioStats sums the portfolio. The average is rounded half away
// from zero, and is 0 for an empty portfolio.
func ComputePortfolioStats(investments []models.Investment) PortfolioStats {
	var s PortfolioStats
	for _, inv := range investments {
		s.TotalInvestments++
		s.TotalInvested += inv.Amount
	}
	if s.TotalInvestments > 0 {
		s.AverageCheck = int64(math.Round(float64(s.TotalInvested) / float64(s.TotalInvestments)))
	}
	return s
}
