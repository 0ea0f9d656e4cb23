package services

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"github.com/thomas-vilte/github2range/internal/models"
	"github.com/thomas-vilte/github2range/internal/regex"
)

const (
	actionOpened = "opened"
	actionClosed = "closed"
)

// MapEvent converts an event by a known user into a suggestion. The bool is
// false when the event does not represent work worth reporting.
func MapEvent(evt models.Event, email string) (models.Suggestion, bool) {
	pr := evt.Payload.PullRequest
	if pr == nil {
		return models.Suggestion{}, false
	}

	var reason models.Reason
	switch evt.Kind {
	case models.EventPullRequest:
		r, ok := pullRequestReason(evt.Payload.Action, pr)
		if !ok {
			return models.Suggestion{}, false
		}
		reason = r
	case models.EventPullRequestReviewComment:
		// Comments on your own pull request are not a review.
		if pr.Author == evt.Actor {
			return models.Suggestion{}, false
		}
		reason = models.ReasonReviewed
	default:
		return models.Suggestion{}, false
	}

	return models.Suggestion{
		EmailHash:      EmailHash(email),
		DedupeStrategy: models.DedupeUpsertPending,
		Reason:         reason,
		IsFuture:       false,
		Attachment:     pullRequestAttachment(pr, evt.Repo),
	}, true
}

func pullRequestReason(action string, pr *models.PullRequest) (models.Reason, bool) {
	switch {
	case action == actionOpened:
		return models.ReasonOpened, true
	case action == actionClosed && pr.Merged:
		return models.ReasonMerged, true
	default:
		return "", false
	}
}

func pullRequestAttachment(pr *models.PullRequest, repo models.Repository) models.Attachment {
	return models.Attachment{
		SourceID:      strconv.FormatInt(pr.ID, 10),
		Provider:      models.AttachmentProvider,
		ProviderName:  models.AttachmentProviderName,
		Type:          models.AttachmentCodeChange,
		Name:          pr.Title,
		Description:   pr.Body,
		HTMLURL:       pr.HTMLURL,
		ParentName:    parentName(repo, pr.HTMLURL),
		ParentHTMLURL: ParentHTMLURL(pr.HTMLURL),
		DateCreated:   pr.CreatedAt,
		DateModified:  pr.UpdatedAt,
		DateClosed:    pr.ClosedAt,
		ChangeID:      strconv.Itoa(pr.Number),
		ChangeLabel:   models.ChangeLabelPullRequest,
		ChangeState:   pr.State,
	}
}

// ParentHTMLURL strips the trailing "/pull/<number>" from a pull request URL.
// The event's repo URL points at the API, not the web UI, hence the string
// transform.
func ParentHTMLURL(prHTMLURL string) string {
	return regex.PullRequestPath.ReplaceAllString(prHTMLURL, "")
}

func parentName(repo models.Repository, prHTMLURL string) string {
	if repo.Name != "" {
		return repo.Name
	}
	if m := regex.GitHubPRURL.FindStringSubmatch(prHTMLURL); m != nil {
		return m[2] + "/" + m[3]
	}
	return ""
}

// EmailHash is the lowercase hex SHA-1 of email. Range matches accounts on it,
// so plain addresses never leave this machine.
func EmailHash(email string) string {
	sum := sha1.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}
