package ledger

import (
	"testing"

	"github.com/danielhkuo/dealdesk/models"
)

func strPtr(s string) *string { return &s }

func seedVotes() []models.Vote {
	return []models.Vote{
		{ID: "vote-1", ApplicationID: "app-1", UserID: "partner-2", Vote: models.VoteYes, Notes: strPtr("Strong founders")},
		{ID: "vote-2", ApplicationID: "app-1", UserID: "partner-3", Vote: models.VoteMaybe},
		{ID: "vote-3", ApplicationID: "app-2", UserID: "partner-2", Vote: models.VoteYes},
	}
}

func TestUpsertReplacesExistingPair(t *testing.T) {
	l := New(seedVotes())

	l.Upsert(models.Vote{ID: "a", ApplicationID: "app-1", UserID: "partner-1", Vote: models.VoteYes})
	l.Upsert(models.Vote{ID: "b", ApplicationID: "app-1", UserID: "partner-1", Vote: models.VoteNo})

	votes := l.VotesFor("app-1")
	if len(votes) != 3 {
		t.Fatalf("expected 3 votes, got %d", len(votes))
	}

	mine, ok := l.VoteOf("app-1", "partner-1")
	if !ok {
		t.Fatal("expected a vote for partner-1")
	}
	if mine.Vote != models.VoteNo || mine.ID != "b" {
		t.Errorf("expected replacement vote b/no, got %s/%s", mine.ID, mine.Vote)
	}

	if l.Len() != 4 {
		t.Errorf("expected 4 votes in ledger, got %d", l.Len())
	}
}

func TestUpsertIdempotentOutcome(t *testing.T) {
	l := New(nil)
	for i := 0; i < 5; i++ {
		l.Upsert(models.Vote{ID: string(rune('a' + i)), ApplicationID: "app-9", UserID: "partner-1", Vote: models.VoteMaybe})
	}
	if got := l.Count("app-9"); got != 1 {
		t.Errorf("expected exactly one vote after repeated casts, got %d", got)
	}
}

func TestVotesForPreservesInsertionOrder(t *testing.T) {
	l := New(seedVotes())
	l.Upsert(models.Vote{ID: "vote-4", ApplicationID: "app-1", UserID: "partner-1", Vote: models.VoteYes})

	votes := l.VotesFor("app-1")
	want := []string{"vote-1", "vote-2", "vote-4"}
	for i, id := range want {
		if votes[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, votes[i].ID)
		}
	}

	if len(l.VotesFor("missing")) != 0 {
		t.Error("expected no votes for unknown application")
	}
}

func TestQuorum(t *testing.T) {
	tests := []struct {
		name  string
		extra []models.Vote
		want  bool
	}{
		{"two votes", nil, false},
		{
			"three distinct partners",
			[]models.Vote{{ID: "x", ApplicationID: "app-1", UserID: "partner-1", Vote: models.VoteYes}},
			true,
		},
		{
			"recast by existing voter",
			[]models.Vote{{ID: "x", ApplicationID: "app-1", UserID: "partner-2", Vote: models.VoteNo}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(seedVotes())
			for _, v := range tt.extra {
				l.Upsert(v)
			}
			if got := l.HasQuorum("app-1"); got != tt.want {
				t.Errorf("expected quorum %v, got %v (count %d)", tt.want, got, l.Count("app-1"))
			}
		})
	}
}

func TestHasVoted(t *testing.T) {
	l := New(seedVotes())
	if !l.HasVoted("app-1", "partner-2") {
		t.Error("partner-2 voted on app-1")
	}
	if l.HasVoted("app-2", "partner-3") {
		t.Error("partner-3 did not vote on app-2")
	}
}

func TestNewCollapsesDuplicatePairs(t *testing.T) {
	votes := append(seedVotes(), models.Vote{ID: "vote-9", ApplicationID: "app-1", UserID: "partner-2", Vote: models.VoteNo})
	l := New(votes)
	if got := l.Count("app-1"); got != 2 {
		t.Errorf("expected 2 votes on app-1, got %d", got)
	}
	v, _ := l.VoteOf("app-1", "partner-2")
	if v.ID != "vote-9" {
		t.Errorf("expected later seed vote to win, got %s", v.ID)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := New(seedVotes())
	all := l.All()
	all[0].Vote = models.VoteNo

	v, _ := l.VoteOf("app-1", "partner-2")
	if v.Vote != models.VoteYes {
		t.Error("mutating All() result must not change the ledger")
	}
}

func TestTally(t *testing.T) {
	l := New(seedVotes())
	l.Upsert(models.Vote{ID: "x", ApplicationID: "app-1", UserID: "partner-1", Vote: models.VoteYes})

	tally := l.Tally("app-1")
	if tally.Yes != 2 || tally.Maybe != 1 || tally.No != 0 {
		t.Errorf("unexpected tally %+v", tally)
	}
	if tally.Count != 3 || !tally.QuorumMet {
		t.Errorf("expected count 3 with quorum, got %+v", tally)
	}
	if tally.Leaning() != models.DecisionYes {
		t.Errorf("expected yes leaning, got %s", tally.Leaning())
	}
}

func TestLeaning(t *testing.T) {
	tests := []struct {
		name  string
		tally Tally
		want  models.Decision
	}{
		{"empty", Tally{}, models.DecisionPending},
		{"majority yes", Tally{Yes: 2, No: 1, Count: 3}, models.DecisionYes},
		{"majority no", Tally{No: 2, Maybe: 1, Count: 3}, models.DecisionNo},
		{"split", Tally{Yes: 1, Maybe: 1, No: 1, Count: 3}, models.DecisionMaybe},
		{"even yes/no", Tally{Yes: 1, No: 1, Count: 2}, models.DecisionMaybe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tally.Leaning(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
