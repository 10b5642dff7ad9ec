// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/dealdesk/models"
)

//go:embed seed.yaml
var embedded []byte

// Dataset is the fixed demo data a session starts from.
type Dataset struct {
	CurrentUserID string                `yaml:"current_user_id"`
	Partners      []models.Partner      `yaml:"partners"`
	Applications  []models.Application  `yaml:"applications"`
	Votes         []models.Vote         `yaml:"votes"`
	Deliberations []models.Deliberation `yaml:"deliberations"`
	Investments   []models.Investment   `yaml:"investments"`
	Notifications []models.Notification `yaml:"notifications"`
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Parse(embedded)
}

// Load reads a dataset from path, or the embedded one when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks enum values and references. Errors wrap
// models.ErrValidation.
func (ds *Dataset) Validate() error {
	partners := make(map[string]bool, len(ds.Partners))
	for _, p := range ds.Partners {
		partners[p.ID] = true
	}
	if !partners[ds.CurrentUserID] {
		return fmt.Errorf("%w: current user %q is not a partner", models.ErrValidation, ds.CurrentUserID)
	}

	apps := make(map[string]models.Stage, len(ds.Applications))
	for _, a := range ds.Applications {
		if _, err := models.ParseStage(string(a.Stage)); err != nil {
			return fmt.Errorf("application %s: %w", a.ID, err)
		}
		if _, dup := apps[a.ID]; dup {
			return fmt.Errorf("%w: duplicate application id %s", models.ErrValidation, a.ID)
		}
		apps[a.ID] = a.Stage
	}

	for _, v := range ds.Votes {
		if !v.Vote.Valid() {
			return fmt.Errorf("vote %s: %w: %q", v.ID, models.ErrInvalidVoteValue, v.Vote)
		}
		if _, ok := apps[v.ApplicationID]; !ok {
			return fmt.Errorf("%w: vote %s references unknown application %s", models.ErrValidation, v.ID, v.ApplicationID)
		}
		if !partners[v.UserID] {
			return fmt.Errorf("%w: vote %s references unknown partner %s", models.ErrValidation, v.ID, v.UserID)
		}
	}

	for _, d := range ds.Deliberations {
		if stage, ok := apps[d.ApplicationID]; !ok || stage != models.StageDeliberation {
			return fmt.Errorf("%w: deliberation %s must reference an application in deliberation", models.ErrValidation, d.ID)
		}
		if !d.Decision.Valid() {
			return fmt.Errorf("deliberation %s: %w: decision %q", d.ID, models.ErrInvalidEnumValue, d.Decision)
		}
		if d.Status != nil && !d.Status.Valid() {
			return fmt.Errorf("deliberation %s: %w: status %q", d.ID, models.ErrInvalidEnumValue, *d.Status)
		}
		for _, tag := range d.Tags {
			if !models.ValidTag(tag) {
				return fmt.Errorf("deliberation %s: %w: %q", d.ID, models.ErrInvalidTag, tag)
			}
		}
	}

	for _, inv := range ds.Investments {
		if !inv.Status.Valid() {
			return fmt.Errorf("investment %s: %w: status %q", inv.ID, models.ErrInvalidEnumValue, inv.Status)
		}
	}

	for _, n := range ds.Notifications {
		if !n.Type.Valid() {
			return fmt.Errorf("notification %s: %w: type %q", n.ID, models.ErrInvalidEnumValue, n.Type)
		}
	}

	return nil
}

// CurrentUser returns the partner the demo acts as.
func (ds *Dataset) CurrentUser() (models.Partner, bool) {
	return ds.Partner(ds.CurrentUserID)
}

// Partner looks up a partner by id.
func (ds *Dataset) Partner(id string) (models.Partner, bool) {
	for _, p := range ds.Partners {
		if p.ID == id {
			return p, true
		}
	}
	return models.Partner{}, false
}

// Clone returns a copy whose slices can be handed to a session without
// sharing backing arrays with ds.
func (ds *Dataset) Clone() *Dataset {
	out := &Dataset{
		CurrentUserID: ds.CurrentUserID,
		Partners:      clone(ds.Partners),
		Applications:  clone(ds.Applications),
		Votes:         clone(ds.Votes),
		Deliberations: clone(ds.Deliberations),
		Investments:   clone(ds.Investments),
		Notifications: clone(ds.Notifications),
	}
	for i := range out.Deliberations {
		out.Deliberations[i].Tags = clone(out.Deliberations[i].Tags)
	}
	for i := range out.Investments {
		out.Investments[i].Founders = clone(out.Investments[i].Founders)
	}
	return out
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
