// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"fmt"
	"time"

	"github.com/danielhkuo/dealdesk/models"
)

// DeliberationPatch is a partial update of an interview's notes. Nil fields
// are left unchanged; a non-nil Tags replaces the whole tag set.
type DeliberationPatch struct {
	Decision    *models.Decision
	Status      *models.DeliberationStatus
	ClearStatus bool
	Tags        []string
	MeetingDate *time.Time
	IdeaSummary *string
	Thoughts    *string
}

// PatchFromRequest validates a raw update request.
func PatchFromRequest(req models.UpdateDeliberationRequest) (DeliberationPatch, error) {
	patch := DeliberationPatch{
		MeetingDate: req.MeetingDate,
		IdeaSummary: req.IdeaSummary,
		Thoughts:    req.Thoughts,
		Tags:        req.Tags,
	}
	if req.Decision != nil {
		d := models.Decision(*req.Decision)
		if !d.Valid() {
			return DeliberationPatch{}, fmt.Errorf("%w: decision %q", models.ErrInvalidEnumValue, *req.Decision)
		}
		patch.Decision = &d
	}
	if req.Status != nil {
		if *req.Status == "" {
			patch.ClearStatus = true
		} else {
			s := models.DeliberationStatus(*req.Status)
			if !s.Valid() {
				return DeliberationPatch{}, fmt.Errorf("%w: status %q", models.ErrInvalidEnumValue, *req.Status)
			}
			patch.Status = &s
		}
	}
	return patch, nil
}

func (p DeliberationPatch) validate() error {
	if p.Decision != nil && !p.Decision.Valid() {
		return fmt.Errorf("%w: decision %q", models.ErrInvalidEnumValue, *p.Decision)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: status %q", models.ErrInvalidEnumValue, *p.Status)
	}
	for _, tag := range p.Tags {
		if !models.ValidTag(tag) {
			return fmt.Errorf("%w: %q", models.ErrInvalidTag, tag)
		}
	}
	return nil
}

// UpdateDeliberation edits the deliberation notes of an interview record.
func (e *Engine) UpdateDeliberation(c *Collections, applicationID string, patch DeliberationPatch) (Event, error) {
	if err := patch.validate(); err != nil {
		return Event{}, err
	}

	i := c.interviewIndex(applicationID)
	if i < 0 {
		return Event{}, e.missing(c, applicationID, models.ErrInvalidStageForDecision)
	}

	rec := c.Interview[i]
	d := rec.Deliberation
	if patch.Decision != nil {
		d.Decision = *patch.Decision
	}
	if patch.ClearStatus {
		d.Status = nil
	} else if patch.Status != nil {
		s := *patch.Status
		d.Status = &s
	}
	if patch.Tags != nil {
		d.Tags = dedupeTags(patch.Tags)
	}
	if patch.MeetingDate != nil {
		md := patch.MeetingDate.UTC()
		d.MeetingDate = &md
	}
	if patch.IdeaSummary != nil {
		d.IdeaSummary = nullable(*patch.IdeaSummary)
	}
	if patch.Thoughts != nil {
		d.Thoughts = nullable(*patch.Thoughts)
	}
	rec.Deliberation = d

	c.Interview = replaceAt(c.Interview, i, rec)
	return e.event(EventDeliberationUpdated, rec.Application), nil
}

// MarkEmailSent records that the founders were emailed about an interview
// or a final decision.
func (e *Engine) MarkEmailSent(c *Collections, applicationID string) (Event, error) {
	now := e.now()

	if i := c.interviewIndex(applicationID); i >= 0 {
		rec := c.Interview[i]
		rec.EmailSent = true
		rec.EmailSentAt = &now
		status := models.DeliberationEmailed
		rec.Deliberation.Status = &status
		c.Interview = replaceAt(c.Interview, i, rec)
		return e.event(EventEmailSent, rec.Application), nil
	}

	if i := c.archiveIndex(applicationID); i >= 0 {
		rec := c.Archive[i]
		rec.EmailSent = true
		rec.EmailSentAt = &now
		c.Archive = replaceAt(c.Archive, i, rec)
		return e.event(EventEmailSent, rec.Application), nil
	}

	if c.pipelineIndex(applicationID) >= 0 {
		return Event{}, fmt.Errorf("%w: %s is in %s", models.ErrInvalidStageForEmail, applicationID, KindPipeline)
	}
	return Event{}, fmt.Errorf("%w: %s", models.ErrApplicationNotFound, applicationID)
}

func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func replaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}
