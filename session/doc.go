// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns the per-client demo state and serializes access to it.

A Session holds the four mutable collections (pipeline applications, vote
ledger, interview, archive) plus a private copy of the seed's reference data.
Every user action goes through a Session method, which locks, calls the
pipeline engine and records metrics:

	token, sess, err := store.Create()
	ev, err := sess.CastVote("app-1", models.VoteYes, "Strong team")
	view := sess.Pipeline()

Reset reseeds a session in place; it is the "reload the page" of the demo.

# Store

Store maps session tokens to sessions. Tokens are never stored; the map is
keyed by tokens.SessionKey. Sessions idle for longer than the TTL are evicted,
lazily on Get and periodically by a janitor goroutine:

	store, err := session.NewStore(dataset, session.Options{TTL: 30 * time.Minute, Salt: salt})
	store.Start(ctx)
	defer store.Close()

# Metrics

Registered on Options.Registry:

	dealdesk_sessions_active            gauge
	dealdesk_sessions_created_total     counter
	dealdesk_sessions_expired_total     counter
	dealdesk_sessions_reset_total       counter
	dealdesk_votes_cast_total           counter
	dealdesk_transitions_total{event}   counter
	dealdesk_operations_rejected_total{operation} counter
*/
package session
