// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
)

// PipelineEntry is one pipeline application as the current user sees it.
type PipelineEntry struct {
	Application models.Application `json:"application"`
	Votes       []models.Vote      `json:"votes"`
	Voters      []models.Partner   `json:"voters"`
	VoteCount   int                `json:"vote_count"`
	UserVote    *models.Vote       `json:"user_vote"`
	Tally       ledger.Tally       `json:"tally"`
	QuorumMet   bool               `json:"quorum_met"`
	Revealed    bool               `json:"revealed"`
}

// Pipeline splits the pipeline by whether the current user has voted.
type Pipeline struct {
	NeedsVote    []PipelineEntry `json:"needs_vote"`
	AlreadyVoted []PipelineEntry `json:"already_voted"`
}

// PipelinePartition builds the pipeline view for currentUserID. Entries keep
// the order of apps.
func PipelinePartition(apps []models.Application, votes *ledger.Ledger, partners []models.Partner, currentUserID string) Pipeline {
	out := Pipeline{
		NeedsVote:    []PipelineEntry{},
		AlreadyVoted: []PipelineEntry{},
	}

	for _, app := range apps {
		entry := pipelineEntry(app, votes, partners, currentUserID)
		if entry.UserVote == nil {
			out.NeedsVote = append(out.NeedsVote, entry)
		} else {
			out.AlreadyVoted = append(out.AlreadyVoted, entry)
		}
	}
	return out
}

func pipelineEntry(app models.Application, votes *ledger.Ledger, partners []models.Partner, currentUserID string) PipelineEntry {
	vs := votes.VotesFor(app.ID)
	entry := PipelineEntry{
		Application: app,
		Votes:       vs,
		Voters:      voters(vs, partners),
		VoteCount:   len(vs),
		Tally:       votes.Tally(app.ID),
		QuorumMet:   votes.HasQuorum(app.ID),
	}
	entry.Revealed = entry.QuorumMet

	if v, ok := votes.VoteOf(app.ID, currentUserID); ok {
		entry.UserVote = &v
	}
	return entry
}

func voters(vs []models.Vote, partners []models.Partner) []models.Partner {
	out := make([]models.Partner, 0, len(vs))
	for _, v := range vs {
		p := models.Partner{ID: v.UserID, Name: v.UserID}
		for _, candidate := range partners {
			if candidate.ID == v.UserID {
				p = candidate
				break
			}
		}
		out = append(out, p)
	}
	return out
}

// Sealed hides the values and notes of other partners' votes until quorum
// is met. The current user's own vote stays visible, as do the voter names.
func (e PipelineEntry) Sealed() PipelineEntry {
	if e.Revealed {
		return e
	}

	sealed := make([]models.Vote, len(e.Votes))
	for i, v := range e.Votes {
		if e.UserVote != nil && v.UserID == e.UserVote.UserID {
			sealed[i] = v
			continue
		}
		sealed[i] = models.Vote{ID: v.ID, ApplicationID: v.ApplicationID, UserID: v.UserID}
	}
	e.Votes = sealed
	e.Tally = ledger.Tally{Count: e.VoteCount}
	return e
}

// Sealed applies PipelineEntry.Sealed to every entry.
func (p Pipeline) Sealed() Pipeline {
	return Pipeline{
		NeedsVote:    sealAll(p.NeedsVote),
		AlreadyVoted: sealAll(p.AlreadyVoted),
	}
}

func sealAll(entries []PipelineEntry) []PipelineEntry {
	out := make([]PipelineEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Sealed()
	}
	return out
}
