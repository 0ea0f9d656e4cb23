package services

import (
	"context"
	"time"

	"github.com/thomas-vilte/github2range/internal/logger"
	"github.com/thomas-vilte/github2range/internal/models"
	"github.com/thomas-vilte/github2range/internal/vcs"
)

// EventsPageSize is the page size used when walking an organization feed.
const EventsPageSize = 20

// Collection is the result of walking every organization feed.
type Collection struct {
	Events    []models.Event
	OrgCounts []models.OrgCount
}

// EventCollector pages through organization event feeds until the cutoff.
type EventCollector struct {
	source   vcs.EventSource
	pageSize int
}

func NewEventCollector(source vcs.EventSource) *EventCollector {
	return &EventCollector{
		source:   source,
		pageSize: EventsPageSize,
	}
}

// Collect returns the events newer than cutoff for every organization of the
// user, concatenated in organization order. Failing to list organizations is
// fatal. A failure inside one organization's feed only truncates that
// organization.
func (c *EventCollector) Collect(ctx context.Context, username string, cutoff time.Time) (*Collection, error) {
	orgs, err := c.source.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	result := &Collection{}
	for _, org := range orgs {
		events, err := c.collectOrg(ctx, username, org, cutoff)
		count := models.OrgCount{Org: org, Events: len(events)}
		if err != nil {
			logger.Warn(ctx, "error while fetching org events, continuing with the events collected",
				"org", org,
				"events", len(events),
				"error", err)
			count.Truncated = true
		}
		result.Events = append(result.Events, events...)
		result.OrgCounts = append(result.OrgCounts, count)
	}

	return result, nil
}

// collectOrg walks one feed, newest first. The feed is assumed to be
// chronological, so the first event at or before cutoff ends the walk. On
// error the events gathered so far are returned along with it.
func (c *EventCollector) collectOrg(ctx context.Context, username, org string, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event

	for page := 1; ; page++ {
		batch, err := c.source.ListOrgEvents(ctx, username, org, page, c.pageSize)
		if err != nil {
			return events, err
		}

		if len(batch) == 0 {
			return events, nil
		}

		for _, evt := range batch {
			if !evt.CreatedAt.After(cutoff) {
				logger.Debug(ctx, "reached cutoff", "org", org, "page", page, "events", len(events))
				return events, nil
			}
			events = append(events, evt)
		}
	}
}
