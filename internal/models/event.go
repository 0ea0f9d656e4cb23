package models

import "time"

// EventKind identifies the GitHub event types the sync knows how to read.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventPullRequest
	EventPullRequestReviewComment
)

const (
	rawPullRequestEvent              = "PullRequestEvent"
	rawPullRequestReviewCommentEvent = "PullRequestReviewCommentEvent"
)

// KindFromType maps a GitHub event type tag to an EventKind.
func KindFromType(eventType string) EventKind {
	switch eventType {
	case rawPullRequestEvent:
		return EventPullRequest
	case rawPullRequestReviewCommentEvent:
		return EventPullRequestReviewComment
	default:
		return EventUnknown
	}
}

type (
	// Event is an organization activity event as read from the source API.
	Event struct {
		ID        string
		Kind      EventKind
		RawType   string
		Actor     string
		CreatedAt time.Time
		Org       string
		Repo      Repository
		Payload   EventPayload
	}

	// Repository is the repository an event happened in. Name is "owner/repo".
	Repository struct {
		Name string
		URL  string
	}

	// EventPayload holds the type-specific fields used by the mapper.
	EventPayload struct {
		Action      string
		PullRequest *PullRequest
		Comment     *ReviewComment
	}

	// PullRequest is the subset of pull request fields carried into an attachment.
	PullRequest struct {
		ID        int64
		Number    int
		Title     string
		Body      string
		HTMLURL   string
		State     string
		Author    string
		Merged    bool
		CreatedAt time.Time
		UpdatedAt time.Time
		ClosedAt  *time.Time
	}

	ReviewComment struct {
		ID      int64
		Author  string
		HTMLURL string
	}
)
