// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"
)

// Stage is the pipeline position of an application.
type Stage string

// Application stage constants
const (
	StageNew          Stage = "new"
	StageVoting       Stage = "voting"
	StageDeliberation Stage = "deliberation"
	StageInvested     Stage = "invested"
	StageRejected     Stage = "rejected"
)

// Valid reports whether s is one of the five stages.
func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageVoting, StageDeliberation, StageInvested, StageRejected:
		return true
	}
	return false
}

// InPipeline reports whether s is a pre-deliberation stage. New and voting
// behave identically everywhere in the core.
func (s Stage) InPipeline() bool {
	return s == StageNew || s == StageVoting
}

// Terminal reports whether s is a final decision.
func (s Stage) Terminal() bool {
	return s == StageInvested || s == StageRejected
}

// ParseStage converts a raw value into a Stage.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: stage %q", ErrInvalidEnumValue, raw)
	}
	return s, nil
}

// ParseFinalDecision accepts only the two terminal stages.
func ParseFinalDecision(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.Terminal() {
		return "", fmt.Errorf("%w: decision %q must be invested or rejected", ErrInvalidEnumValue, raw)
	}
	return s, nil
}

// VoteValue is a partner's assessment.
type VoteValue string

const (
	VoteYes   VoteValue = "yes"
	VoteMaybe VoteValue = "maybe"
	VoteNo    VoteValue = "no"
)

func (v VoteValue) Valid() bool {
	return v == VoteYes || v == VoteMaybe || v == VoteNo
}

// ParseVoteValue converts a raw value into a VoteValue.
func ParseVoteValue(raw string) (VoteValue, error) {
	v := VoteValue(raw)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVoteValue, raw)
	}
	return v, nil
}

// Decision is the leaning recorded on a deliberation while it is open.
type Decision string

const (
	DecisionPending Decision = "pending"
	DecisionYes     Decision = "yes"
	DecisionNo      Decision = "no"
	DecisionMaybe   Decision = "maybe"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionPending, DecisionYes, DecisionNo, DecisionMaybe:
		return true
	}
	return false
}

// DeliberationStatus tracks the founder meeting. A nil *DeliberationStatus
// means no status has been set.
type DeliberationStatus string

const (
	DeliberationScheduled DeliberationStatus = "scheduled"
	DeliberationMet       DeliberationStatus = "met"
	DeliberationEmailed   DeliberationStatus = "emailed"
)

func (s DeliberationStatus) Valid() bool {
	return s == DeliberationScheduled || s == DeliberationMet || s == DeliberationEmailed
}

// NotificationType classifies dashboard notifications.
type NotificationType string

const (
	NotificationVoteNeeded       NotificationType = "vote_needed"
	NotificationDecisionNeeded   NotificationType = "decision_needed"
	NotificationNewApplication   NotificationType = "new_application"
	NotificationInvestmentClosed NotificationType = "investment_closed"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationVoteNeeded, NotificationDecisionNeeded, NotificationNewApplication, NotificationInvestmentClosed:
		return true
	}
	return false
}

// InvestmentStatus is the lifecycle state of a portfolio company.
type InvestmentStatus string

const (
	InvestmentActive     InvestmentStatus = "active"
	InvestmentAcquired   InvestmentStatus = "acquired"
	InvestmentIPO        InvestmentStatus = "ipo"
	InvestmentWrittenOff InvestmentStatus = "written_off"
)

func (s InvestmentStatus) Valid() bool {
	switch s {
	case InvestmentActive, InvestmentAcquired, InvestmentIPO, InvestmentWrittenOff:
		return true
	}
	return false
}

// DeliberationTags is the fixed palette deliberation tags are drawn from.
var DeliberationTags = []string{
	"strong-team",
	"technical",
	"market-risk",
	"too-early",
	"follow-up",
	"great-fit",
}

// ValidTag reports whether tag belongs to DeliberationTags.
func ValidTag(tag string) bool {
	for _, t := range DeliberationTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Domain types

type Partner struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

type Vote struct {
	ID            string    `json:"id" yaml:"id"`
	ApplicationID string    `json:"application_id" yaml:"application_id"`
	UserID        string    `json:"user_id" yaml:"user_id"`
	Vote          VoteValue `json:"vote" yaml:"vote"`
	Notes         *string   `json:"notes" yaml:"notes"`
}

// Application is the base record shared by every stage-specific shape.
type Application struct {
	ID                 string    `json:"id" yaml:"id"`
	CompanyName        string    `json:"company_name" yaml:"company_name"`
	FounderNames       *string   `json:"founder_names" yaml:"founder_names"`
	FounderLinkedIns   *string   `json:"founder_linkedins" yaml:"founder_linkedins"`
	FounderBios        *string   `json:"founder_bios" yaml:"founder_bios"`
	PrimaryEmail       *string   `json:"primary_email" yaml:"primary_email"`
	CompanyDescription *string   `json:"company_description" yaml:"company_description"`
	Website            *string   `json:"website" yaml:"website"`
	PreviousFunding    *string   `json:"previous_funding" yaml:"previous_funding"`
	DeckLink           *string   `json:"deck_link" yaml:"deck_link"`
	SubmittedAt        time.Time `json:"submitted_at" yaml:"submitted_at"`
	Stage              Stage     `json:"stage" yaml:"stage"`
}

type Deliberation struct {
	ID            string              `json:"id" yaml:"id"`
	ApplicationID string              `json:"application_id" yaml:"application_id"`
	Decision      Decision            `json:"decision" yaml:"decision"`
	Status        *DeliberationStatus `json:"status" yaml:"status"`
	Tags          []string            `json:"tags" yaml:"tags"`
	MeetingDate   *time.Time          `json:"meeting_date" yaml:"meeting_date"`
	IdeaSummary   *string             `json:"idea_summary" yaml:"idea_summary"`
	Thoughts      *string             `json:"thoughts" yaml:"thoughts"`
	CreatedAt     time.Time           `json:"created_at" yaml:"created_at"`
}

// DeliberationApplication is an application in the interview stage.
type DeliberationApplication struct {
	Application
	Votes        []Vote       `json:"votes"`
	Deliberation Deliberation `json:"deliberation"`
	EmailSent    bool         `json:"email_sent"`
	EmailSentAt  *time.Time   `json:"email_sent_at"`
}

// ArchivedApplication is an application with a final decision. It does not
// carry the deliberation notes.
type ArchivedApplication struct {
	Application
	Votes       []Vote     `json:"votes"`
	EmailSent   bool       `json:"email_sent"`
	EmailSentAt *time.Time `json:"email_sent_at"`
}

type Founder struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Email *string `json:"email" yaml:"email"`
	Title *string `json:"title" yaml:"title"`
}

type Investment struct {
	ID                 string           `json:"id" yaml:"id"`
	CompanyName        string           `json:"company_name" yaml:"company_name"`
	LogoURL            *string          `json:"logo_url" yaml:"logo_url"`
	ShortDescription   *string          `json:"short_description" yaml:"short_description"`
	Website            *string          `json:"website" yaml:"website"`
	InvestmentDate     time.Time        `json:"investment_date" yaml:"investment_date"`
	Type               *string          `json:"type" yaml:"type"`
	Amount             int64            `json:"amount" yaml:"amount"`
	Round              *string          `json:"round" yaml:"round"`
	PostMoneyValuation *int64           `json:"post_money_valuation" yaml:"post_money_valuation"`
	Status             InvestmentStatus `json:"status" yaml:"status"`
	Founders           []Founder        `json:"founders" yaml:"founders"`
}

type Notification struct {
	ID          string           `json:"id" yaml:"id"`
	Type        NotificationType `json:"type" yaml:"type"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	CreatedAt   time.Time        `json:"created_at" yaml:"created_at"`
	Read        bool             `json:"read" yaml:"read"`
}

// Request types

type CastVoteRequest struct {
	Vote  string `json:"vote"`
	Notes string `json:"notes"`
}

type DecisionRequest struct {
	Decision string `json:"decision"`
}

// UpdateDeliberationRequest carries a partial update; nil fields are left
// unchanged.
type UpdateDeliberationRequest struct {
	Decision    *string    `json:"decision,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	MeetingDate *time.Time `json:"meeting_date,omitempty"`
	IdeaSummary *string    `json:"idea_summary,omitempty"`
	Thoughts    *string    `json:"thoughts,omitempty"`
}

// Response types

type CreateSessionResponse struct {
	SessionToken string    `json:"session_token"`
	CurrentUser  Partner   `json:"current_user"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// EventResponse is returned by every mutating endpoint so the client can
// show its confirmation.
type EventResponse struct {
	Event   string `json:"event"`
	Message string `json:"message"`
	Tone    string `json:"tone"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
