// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
)

// DashboardInput is everything the dashboard is computed from.
type DashboardInput struct {
	Applications  []models.Application
	Votes         *ledger.Ledger
	Interview     []models.DeliberationApplication
	Archive       []models.ArchivedApplication
	Notifications []models.Notification
	Investments   []models.Investment
	CurrentUserID string
}

type DashboardStats struct {
	Pipeline     int `json:"pipeline"`
	Deliberation int `json:"deliberation"`
	Invested     int `json:"invested"`
	Rejected     int `json:"rejected"`
}

// Dashboard is the landing view. The preview lists are not truncated.
type Dashboard struct {
	Stats               DashboardStats                   `json:"stats"`
	UnreadNotifications int                              `json:"unread_notifications"`
	NeedsVote           []models.Application             `json:"needs_vote"`
	NeedsDecision       []models.DeliberationApplication `json:"needs_decision"`
	Portfolio           PortfolioStats                   `json:"portfolio"`
}

func ComputeDashboard(in DashboardInput) Dashboard {
	d := Dashboard{
		NeedsVote:     []models.Application{},
		NeedsDecision: []models.DeliberationApplication{},
		Portfolio:     ComputePortfolioStats(in.Investments),
	}

	d.Stats.Pipeline = len(in.Applications)
	d.Stats.Deliberation = len(in.Interview)
	for _, a := range in.Archive {
		switch a.Stage {
		case models.StageInvested:
			d.Stats.Invested++
		case models.StageRejected:
			d.Stats.Rejected++
		}
	}

	for _, n := range in.Notifications {
		if !n.Read {
			d.UnreadNotifications++
		}
	}

	for _, app := range in.Applications {
		if in.Votes == nil || !in.Votes.HasVoted(app.ID, in.CurrentUserID) {
			d.NeedsVote = append(d.NeedsVote, app)
		}
	}
	d.NeedsDecision = append(d.NeedsDecision, in.Interview...)

	return d
}
