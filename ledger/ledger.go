// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"github.com/danielhkuo/dealdesk/models"
)

// QuorumSize is the number of partners at this firm. Once an application has
// this many votes every vote is revealed and it may advance.
const QuorumSize = 3

// Ledger holds votes in insertion order, at most one per
// (application, voter) pair.
type Ledger struct {
	votes []models.Vote
}

// New returns a ledger seeded with a copy of votes. Later votes for a pair
// that already appeared replace the earlier one.
func New(votes []models.Vote) *Ledger {
	l := &Ledger{votes: make([]models.Vote, 0, len(votes))}
	for _, v := range votes {
		l.Upsert(v)
	}
	return l
}

// Upsert removes any vote for v's pair and appends v.
func (l *Ledger) Upsert(v models.Vote) {
	kept := l.votes[:0]
	for _, existing := range l.votes {
		if existing.ApplicationID == v.ApplicationID && existing.UserID == v.UserID {
			continue
		}
		kept = append(kept, existing)
	}
	l.votes = append(kept, v)
}

// VotesFor returns the votes for an application in insertion order.
func (l *Ledger) VotesFor(applicationID string) []models.Vote {
	votes := []models.Vote{}
	for _, v := range l.votes {
		if v.ApplicationID == applicationID {
			votes = append(votes, v)
		}
	}
	return votes
}

// Count returns the number of votes cast on an application.
func (l *Ledger) Count(applicationID string) int {
	n := 0
	for _, v := range l.votes {
		if v.ApplicationID == applicationID {
			n++
		}
	}
	return n
}

// HasQuorum reports whether every partner has voted on the application.
func (l *Ledger) HasQuorum(applicationID string) bool {
	return QuorumMet(l.Count(applicationID))
}

// HasVoted reports whether userID has a vote on applicationID.
func (l *Ledger) HasVoted(applicationID, userID string) bool {
	_, ok := l.VoteOf(applicationID, userID)
	return ok
}

// VoteOf returns userID's vote on applicationID.
func (l *Ledger) VoteOf(applicationID, userID string) (models.Vote, bool) {
	for _, v := range l.votes {
		if v.ApplicationID == applicationID && v.UserID == userID {
			return v, true
		}
	}
	return models.Vote{}, false
}

// All returns a copy of every vote in insertion order.
func (l *Ledger) All() []models.Vote {
	out := make([]models.Vote, len(l.votes))
	copy(out, l.votes)
	return out
}

// Len returns the total number of votes.
func (l *Ledger) Len() int {
	return len(l.votes)
}

// QuorumMet is the quorum predicate on a vote count.
func QuorumMet(count int) bool {
	return count >= QuorumSize
}
