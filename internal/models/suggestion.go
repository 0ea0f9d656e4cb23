package models

import "time"

// Reason tells the downstream service why a suggestion was made.
type Reason string

const (
	ReasonOpened   Reason = "OPENED"
	ReasonMerged   Reason = "MERGED"
	ReasonReviewed Reason = "REVIEWED"
)

const (
	DedupeUpsertPending = "UPSERT_PENDING"

	AttachmentProvider     = "github2range"
	AttachmentProviderName = "GitHub"
	AttachmentCodeChange   = "CODE_CHANGE"
	ChangeLabelPullRequest = "PR #"
)

type (
	// Suggestion is the payload posted to the Range webhook.
	Suggestion struct {
		EmailHash      string     `json:"email_hash"`
		DedupeStrategy string     `json:"dedupe_strategy"`
		Reason         Reason     `json:"reason"`
		IsFuture       bool       `json:"is_future"`
		Attachment     Attachment `json:"attachment"`
	}

	// Attachment describes the pull request a suggestion refers to.
	// SourceID is unique per pull request and is the deduplication key.
	Attachment struct {
		SourceID      string     `json:"source_id"`
		Provider      string     `json:"provider"`
		ProviderName  string     `json:"provider_name"`
		Type          string     `json:"type"`
		Name          string     `json:"name"`
		Description   string     `json:"description"`
		HTMLURL       string     `json:"html_url"`
		ParentName    string     `json:"parent_name"`
		ParentHTMLURL string     `json:"parent_html_url"`
		DateCreated   time.Time  `json:"date_created"`
		DateModified  time.Time  `json:"date_modified"`
		DateClosed    *time.Time `json:"date_closed"`
		ChangeID      string     `json:"change_id"`
		ChangeLabel   string     `json:"change_label"`
		ChangeState   string     `json:"change_state"`
	}
)
