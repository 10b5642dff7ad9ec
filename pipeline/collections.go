// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
)

// RecordKind tags which collection currently lists an application.
type RecordKind string

const (
	KindPipeline  RecordKind = "pipeline"
	KindInterview RecordKind = "interview"
	KindArchive   RecordKind = "archive"
)

// Record is the stage-tagged view of an application, whichever collection
// holds it.
type Record interface {
	Kind() RecordKind
	Base() models.Application
}

type PipelineRecord struct {
	models.Application
}

func (r PipelineRecord) Kind() RecordKind         { return KindPipeline }
func (r PipelineRecord) Base() models.Application { return r.Application }

type InterviewRecord struct {
	models.DeliberationApplication
}

func (r InterviewRecord) Kind() RecordKind         { return KindInterview }
func (r InterviewRecord) Base() models.Application { return r.Application }

type ArchiveRecord struct {
	models.ArchivedApplication
}

func (r ArchiveRecord) Kind() RecordKind         { return KindArchive }
func (r ArchiveRecord) Base() models.Application { return r.Application }

// Collections are the four mutable top-level collections of a session.
// Interview and Archive are ordered most-recent-first.
type Collections struct {
	Applications []models.Application
	Votes        *ledger.Ledger
	Interview    []models.DeliberationApplication
	Archive      []models.ArchivedApplication
}

// Find locates an application in whichever collection holds it.
func (c *Collections) Find(applicationID string) (Record, bool) {
	if i := c.pipelineIndex(applicationID); i >= 0 {
		return PipelineRecord{c.Applications[i]}, true
	}
	if i := c.interviewIndex(applicationID); i >= 0 {
		return InterviewRecord{c.Interview[i]}, true
	}
	if i := c.archiveIndex(applicationID); i >= 0 {
		return ArchiveRecord{c.Archive[i]}, true
	}
	return nil, false
}

// Total is the number of applications across pipeline, interview and
// archive. Transitions never change it.
func (c *Collections) Total() int {
	return len(c.Applications) + len(c.Interview) + len(c.Archive)
}

// InterviewEntry returns the interview entry for applicationID.
func (c *Collections) InterviewEntry(applicationID string) (models.DeliberationApplication, bool) {
	if i := c.interviewIndex(applicationID); i >= 0 {
		return c.Interview[i], true
	}
	return models.DeliberationApplication{}, false
}

func (c *Collections) pipelineIndex(id string) int {
	for i := range c.Applications {
		if c.Applications[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collections) interviewIndex(id string) int {
	for i := range c.Interview {
		if c.Interview[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collections) archiveIndex(id string) int {
	for i := range c.Archive {
		if c.Archive[i].ID == id {
			return i
		}
	}
	return -1
}

// without returns s minus element i, always in a fresh backing array so
// views computed before a transition keep their contents.
func without[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func prepend[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

func cloneVotes(votes []models.Vote) []models.Vote {
	out := make([]models.Vote, len(votes))
	copy(out, votes)
	return out
}
