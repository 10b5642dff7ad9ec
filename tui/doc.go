// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tui is the terminal front end, started with -mode tui.

It drives one session.Session through bubbletea. The App model keeps only
navigation state (tab, cursor, search input); the open modal, the vote form
and the toast queue live in a ui.State, which reacts to the events the
session returns.

# Keys

	1-5, tab, shift+tab  switch screen
	up/down, j/k         move the cursor
	enter                vote, decide or show details
	a                    advance to interview (pipeline)
	e                    mark founders emailed (interview, archive)
	/                    search (archive, portfolio)
	s                    cycle sort order (archive, portfolio)
	ctrl+r               reload the demo data
	q, ctrl+c            quit

In the vote dialog, y/m/n pick the value, tab moves to the notes field and
enter submits.
*/
package tui
