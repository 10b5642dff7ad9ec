// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "github.com/danielhkuo/dealdesk/models"

// Tally is the per-application vote aggregate.
type Tally struct {
	Yes       int  `json:"yes"`
	Maybe     int  `json:"maybe"`
	No        int  `json:"no"`
	Count     int  `json:"count"`
	QuorumMet bool `json:"quorum_met"`
}

// Tally aggregates the votes on one application.
func (l *Ledger) Tally(applicationID string) Tally {
	return TallyVotes(l.VotesFor(applicationID))
}

// TallyVotes aggregates an already-filtered vote list, such as the votes
// copied onto an interview or archive record.
func TallyVotes(votes []models.Vote) Tally {
	var t Tally
	for _, v := range votes {
		switch v.Vote {
		case models.VoteYes:
			t.Yes++
		case models.VoteMaybe:
			t.Maybe++
		case models.VoteNo:
			t.No++
		}
		t.Count++
	}
	t.QuorumMet = QuorumMet(t.Count)
	return t
}

// Leaning summarises a tally the way partners read it: a majority of yes
// votes is "yes", a majority of no votes is "no", anything else "maybe".
// An empty tally leans "pending".
func (t Tally) Leaning() models.Decision {
	switch {
	case t.Count == 0:
		return models.DecisionPending
	case t.Yes*2 > t.Count:
		return models.DecisionYes
	case t.No*2 > t.Count:
		return models.DecisionNo
	default:
		return models.DecisionMaybe
	}
}
