// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"fmt"

	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
)

// Collect partitions seed applications into the three collections by
// stage. Applications already in deliberation pick up their seeded
// deliberation record, or a fresh pending one when the seed has none.
func (e *Engine) Collect(apps []models.Application, votes []models.Vote, deliberations []models.Deliberation) (*Collections, error) {
	l := ledger.New(votes)
	c := &Collections{
		Applications: []models.Application{},
		Votes:        l,
		Interview:    []models.DeliberationApplication{},
		Archive:      []models.ArchivedApplication{},
	}

	byApp := make(map[string]models.Deliberation, len(deliberations))
	for _, d := range deliberations {
		byApp[d.ApplicationID] = d
	}

	seen := make(map[string]bool, len(apps))
	for _, app := range apps {
		if seen[app.ID] {
			return nil, fmt.Errorf("%w: duplicate application id %s", models.ErrValidation, app.ID)
		}
		seen[app.ID] = true

		switch {
		case app.Stage.InPipeline():
			c.Applications = append(c.Applications, app)

		case app.Stage == models.StageDeliberation:
			d, ok := byApp[app.ID]
			if !ok {
				d = e.newDeliberation(app.ID)
			}
			if !d.Decision.Valid() {
				return nil, fmt.Errorf("%w: deliberation decision %q for %s", models.ErrInvalidEnumValue, d.Decision, app.ID)
			}
			if d.Tags == nil {
				d.Tags = []string{}
			}
			c.Interview = append(c.Interview, models.DeliberationApplication{
				Application:  app,
				Votes:        l.VotesFor(app.ID),
				Deliberation: d,
			})

		case app.Stage.Terminal():
			c.Archive = append(c.Archive, models.ArchivedApplication{
				Application: app,
				Votes:       l.VotesFor(app.ID),
			})

		default:
			return nil, fmt.Errorf("%w: stage %q for %s", models.ErrInvalidEnumValue, app.Stage, app.ID)
		}
	}

	for _, v := range l.All() {
		if !seen[v.ApplicationID] {
			return nil, fmt.Errorf("vote %s: %w: %s", v.ID, models.ErrApplicationNotFound, v.ApplicationID)
		}
	}

	return c, nil
}
