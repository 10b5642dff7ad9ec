// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import "time"

// ToastLifetime is how long a toast stays up before it is dismissed.
const ToastLifetime = 3 * time.Second

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

type Toast struct {
	ID        int
	Message   string
	Tone      Tone
	Celebrate bool
	CreatedAt time.Time
}

// Expired reports whether the toast has outlived ToastLifetime at now.
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.CreatedAt.Add(ToastLifetime))
}

// Show queues a toast and returns its id.
func (s *State) Show(message string, tone Tone, now time.Time) int {
	return s.push(Toast{Message: message, Tone: tone, CreatedAt: now})
}

func (s *State) push(t Toast) int {
	s.nextID++
	t.ID = s.nextID
	s.toasts = append(s.toasts, t)
	return t.ID
}

// Toasts drops expired toasts and returns the rest, oldest first.
func (s *State) Toasts(now time.Time) []Toast {
	live := s.toasts[:0]
	for _, t := range s.toasts {
		if !t.Expired(now) {
			live = append(live, t)
		}
	}
	s.toasts = live
	return append([]Toast(nil), live...)
}

// Dismiss removes a toast before it expires.
func (s *State) Dismiss(id int) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}
