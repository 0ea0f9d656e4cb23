package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thomas-vilte/github2range/internal/i18n"
	"github.com/thomas-vilte/github2range/internal/logger"
	"github.com/thomas-vilte/github2range/internal/models"
	"github.com/thomas-vilte/github2range/internal/ui"
	"github.com/thomas-vilte/github2range/internal/vcs"
	"github.com/thomas-vilte/github2range/internal/webhook"
)

const cutoffLayout = "2006-01-02 15:04:05 MST"

// Deliverer sends one suggestion downstream.
type Deliverer interface {
	Deliver(ctx context.Context, s models.Suggestion) (*webhook.DeliveryResult, error)
}

type SyncOptions struct {
	// Users maps GitHub logins to emails. Events by anyone else are skipped.
	Users  map[string]string
	MaxAge time.Duration
	DryRun bool
}

type SyncService struct {
	source    vcs.EventSource
	collector *EventCollector
	deliverer Deliverer
	printer   *ui.Printer
	trans     *i18n.Translations
	opts      SyncOptions
	now       func() time.Time
	newRunID  func() string
}

type SyncServiceOption func(*SyncService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SyncServiceOption {
	return func(s *SyncService) {
		s.now = now
	}
}

func WithRunID(newRunID func() string) SyncServiceOption {
	return func(s *SyncService) {
		s.newRunID = newRunID
	}
}

func NewSyncService(source vcs.EventSource, deliverer Deliverer, printer *ui.Printer, trans *i18n.Translations, opts SyncOptions, options ...SyncServiceOption) *SyncService {
	s := &SyncService{
		source:    source,
		collector: NewEventCollector(source),
		deliverer: deliverer,
		printer:   printer,
		trans:     trans,
		opts:      opts,
		now:       time.Now,
		newRunID:  func() string { return uuid.NewString() },
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Run performs one sync: resolve the user, collect, map, dedupe and deliver.
// A delivery error stops the remaining deliveries; the report still counts
// what was sent before it.
func (s *SyncService) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:         s.newRunID(),
		UnmappedUsers: map[string]int{},
		DryRun:        s.opts.DryRun,
	}
	ctx = logger.With(ctx, "run_id", report.RunID)

	username, err := s.source.GetAuthenticatedUser(ctx)
	if err != nil {
		return report, err
	}
	report.Username = username
	report.Cutoff = s.now().Add(-s.opts.MaxAge)

	s.printer.Step(s.trans.GetMessage("sync_collecting", 0, map[string]interface{}{
		"Username": username,
		"Cutoff":   report.Cutoff.Local().Format(cutoffLayout),
	}))

	collection, err := s.collector.Collect(ctx, username, report.Cutoff)
	if err != nil {
		return report, err
	}
	report.OrgCounts = collection.OrgCounts
	report.EventsCollected = len(collection.Events)
	s.printOrgCounts(collection.OrgCounts)

	set := NewSuggestionSet()
	for _, evt := range collection.Events {
		email, ok := s.opts.Users[evt.Actor]
		if !ok || email == "" {
			report.UnmappedUsers[evt.Actor]++
			continue
		}

		suggestion, ok := MapEvent(evt, email)
		if !ok {
			logger.Debug(ctx, "event not actionable", "event_id", evt.ID, "type", evt.RawType, "action", evt.Payload.Action)
			continue
		}

		if set.Add(suggestion) {
			a := suggestion.Attachment
			s.printer.Item(s.trans.GetMessage("sync_suggestion", 0, map[string]interface{}{
				"Username": evt.Actor,
				"Type":     a.Type,
				"Reason":   suggestion.Reason,
				"Name":     a.Name,
			}))
			if c := evt.Payload.Comment; c != nil && suggestion.Reason == models.ReasonReviewed {
				logger.Info(ctx, "review comment",
					"source_id", a.SourceID,
					"comment_id", c.ID,
					"comment_author", c.Author,
					"comment_url", c.HTMLURL)
			}
		}
	}
	report.Suggestions = set.Suggestions()

	s.printUnmapped(report.UnmappedUsers)

	s.printer.Step(s.trans.GetMessage("sync_found", set.Len(), map[string]interface{}{"Count": set.Len()}))

	if s.opts.DryRun {
		if err := s.printPayloads(report.Suggestions); err != nil {
			return report, err
		}
		s.printer.Done(s.trans.GetMessage("sync_dry_run", 0, nil))
		return report, nil
	}

	for _, suggestion := range report.Suggestions {
		if _, err := s.deliverer.Deliver(ctx, suggestion); err != nil {
			logger.Error(ctx, "delivery failed, stopping", err,
				"source_id", suggestion.Attachment.SourceID,
				"delivered", report.Delivered)
			return report, err
		}
		report.Delivered++
	}

	logger.Info(ctx, "sync finished", "events", report.EventsCollected, "suggestions", report.Delivered)
	s.printer.Done(s.trans.GetMessage("sync_done", 0, nil))
	return report, nil
}

func (s *SyncService) printOrgCounts(counts []models.OrgCount) {
	for _, c := range counts {
		if c.Truncated {
			s.printer.Warn(s.trans.GetMessage("sync_org_error", 0, map[string]interface{}{"Org": c.Org}))
		}
		s.printer.Item(s.trans.GetMessage("sync_org_events", 0, map[string]interface{}{
			"Org":   c.Org,
			"Count": c.Events,
		}))
	}
}

func (s *SyncService) printUnmapped(unmapped map[string]int) {
	if len(unmapped) == 0 {
		return
	}

	names := make([]string, 0, len(unmapped))
	for name := range unmapped {
		names = append(names, name)
	}
	sort.Strings(names)

	s.printer.Step(s.trans.GetMessage("sync_unmapped_users", len(names), map[string]interface{}{
		"Count": len(names),
		"Names": strings.Join(names, ", "),
	}))
}

func (s *SyncService) printPayloads(suggestions []models.Suggestion) error {
	for _, suggestion := range suggestions {
		payload, err := webhook.Encode(suggestion)
		if err != nil {
			return err
		}
		s.printer.Raw(string(payload))
	}
	return nil
}
