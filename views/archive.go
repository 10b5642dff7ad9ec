// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/dealdesk/models"
)

// ArchiveSort selects the archive ordering.
type ArchiveSort string

const (
	ArchiveDateNewest ArchiveSort = "date-newest"
	ArchiveDateOldest ArchiveSort = "date-oldest"
	ArchiveNameAZ     ArchiveSort = "name-az"
	ArchiveNameZA     ArchiveSort = "name-za"
	ArchiveStageAZ    ArchiveSort = "stage-az"
	ArchiveStageZA    ArchiveSort = "stage-za"
)

// ArchiveSorts lists the keys in display order.
var ArchiveSorts = []ArchiveSort{
	ArchiveDateNewest, ArchiveDateOldest,
	ArchiveNameAZ, ArchiveNameZA,
	ArchiveStageAZ, ArchiveStageZA,
}

func (s ArchiveSort) Valid() bool {
	return slices.Contains(ArchiveSorts, s)
}

// ParseArchiveSort converts a raw key; the empty string means date-newest.
func ParseArchiveSort(raw string) (ArchiveSort, error) {
	if raw == "" {
		return ArchiveDateNewest, nil
	}
	s := ArchiveSort(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: archive sort %q", models.ErrInvalidEnumValue, raw)
	}
	return s, nil
}

// SearchAndSortArchive filters archive by a case-insensitive substring of
// company name, founder names or description, then sorts stably by key.
// The input slice is not modified.
func SearchAndSortArchive(archive []models.ArchivedApplication, query string, key ArchiveSort) ([]models.ArchivedApplication, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: archive sort %q", models.ErrInvalidEnumValue, key)
	}

	m := newMatcher(query)
	out := make([]models.ArchivedApplication, 0, len(archive))
	for _, a := range archive {
		if m.matches(&a.CompanyName, a.FounderNames, a.CompanyDescription) {
			out = append(out, a)
		}
	}

	col := newNameCollator()
	var order func(a, b models.ArchivedApplication) int
	switch key {
	case ArchiveDateNewest:
		order = func(a, b models.ArchivedApplication) int {
			return b.SubmittedAt.Compare(a.SubmittedAt)
		}
	case ArchiveDateOldest:
		order = func(a, b models.ArchivedApplication) int {
			return a.SubmittedAt.Compare(b.SubmittedAt)
		}
	case ArchiveNameAZ:
		order = func(a, b models.ArchivedApplication) int {
			return col.CompareString(a.CompanyName, b.CompanyName)
		}
	case ArchiveNameZA:
		order = func(a, b models.ArchivedApplication) int {
			return col.CompareString(b.CompanyName, a.CompanyName)
		}
	case ArchiveStageAZ:
		order = func(a, b models.ArchivedApplication) int {
			return strings.Compare(string(a.Stage), string(b.Stage))
		}
	case ArchiveStageZA:
		order = func(a, b models.ArchivedApplication) int {
			return strings.Compare(string(b.Stage), string(a.Stage))
		}
	}

	slices.SortStableFunc(out, order)
	return out, nil
}
