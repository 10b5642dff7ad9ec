// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators and casers hold internal buffers, so each search builds its own.

type matcher struct {
	fold  cases.Caser
	query string
	all   bool
}

// newMatcher trims query only to decide whether it is blank; a non-blank
// query is matched as typed, surrounding spaces included.
func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold(), all: strings.TrimSpace(query) == ""}
	m.query = m.fold.String(query)
	return m
}

// matches reports whether one of fields contains the query. A blank query
// matches everything; nil fields never match.
func (m *matcher) matches(fields ...*string) bool {
	if m.all {
		return true
	}
	for _, f := range fields {
		if f != nil && strings.Contains(m.fold.String(*f), m.query) {
			return true
		}
	}
	return false
}

func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
