// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the DealDesk API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg, registry)

A nil registry leaves /metrics unregistered.

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition

Sessions:

	POST /sessions       - Start a session from the seed
	POST /sessions/reset - Reseed the caller's session

Screens (require X-Session-Token):

	GET /dashboard          - Stats and preview lists
	GET /partners           - Partner list
	GET /notifications      - Notifications
	GET /pipeline           - Needs-vote / already-voted partition
	GET /interview          - Applications in deliberation
	GET /archive?q=&sort=   - Decided applications
	GET /portfolio?q=&sort= - Investments, stats, monthly rollup

Transitions (require X-Session-Token):

	POST  /pipeline/{id}/votes          - Cast or change a vote
	POST  /pipeline/{id}/advance        - Move to interview
	PATCH /interview/{id}/deliberation  - Edit deliberation notes
	POST  /interview/{id}/email         - Mark founders emailed
	POST  /interview/{id}/decision      - Invest or reject
	POST  /archive/{id}/email           - Mark founders emailed

Every route except /health and /metrics is wrapped with request logging.
*/
package router
