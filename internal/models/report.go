package models

import "time"

type (
	// OrgCount is the number of in-period events collected for one organization.
	OrgCount struct {
		Org    string
		Events int
		// Truncated is set when paging stopped on an API error.
		Truncated bool
	}

	// RunReport summarizes a single sync run.
	RunReport struct {
		RunID           string
		Username        string
		Cutoff          time.Time
		OrgCounts       []OrgCount
		EventsCollected int
		UnmappedUsers   map[string]int
		Suggestions     []Suggestion
		Delivered       int
		DryRun          bool
	}
)
