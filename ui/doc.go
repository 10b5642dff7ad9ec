// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ui is the presentation state machine shared by the front ends:
// which modal is open, the vote form, and a toast queue that expires entries
// after ToastLifetime. It consumes pipeline events and never drives the
// engine.
package ui
