package services

import (
	"fmt"
	"time"

	"github.com/thomas-vilte/github2range/internal/models"
)

var testNow = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

// eventAt builds an event created offset before testNow.
func eventAt(offset time.Duration) models.Event {
	return models.Event{CreatedAt: testNow.Add(-offset)}
}

func prEvent(actor, action string, prID int64, merged bool, createdAgo time.Duration) models.Event {
	number := int(prID % 1000)
	return models.Event{
		ID:        fmt.Sprintf("evt-%d-%s", prID, action),
		Kind:      models.EventPullRequest,
		RawType:   "PullRequestEvent",
		Actor:     actor,
		CreatedAt: testNow.Add(-createdAgo),
		Org:       "acme",
		Repo:      models.Repository{Name: "acme/widgets", URL: "https://api.github.com/repos/acme/widgets"},
		Payload: models.EventPayload{
			Action: action,
			PullRequest: &models.PullRequest{
				ID:        prID,
				Number:    number,
				Title:     fmt.Sprintf("PR %d", prID),
				Body:      "body",
				HTMLURL:   fmt.Sprintf("https://github.com/acme/widgets/pull/%d", number),
				State:     "open",
				Author:    actor,
				Merged:    merged,
				CreatedAt: testNow.Add(-48 * time.Hour),
				UpdatedAt: testNow.Add(-createdAgo),
			},
		},
	}
}

func reviewCommentEvent(actor, prAuthor string, prID int64) models.Event {
	evt := prEvent(prAuthor, "created", prID, false, time.Hour)
	evt.Kind = models.EventPullRequestReviewComment
	evt.RawType = "PullRequestReviewCommentEvent"
	evt.Actor = actor
	evt.Payload.Comment = &models.ReviewComment{
		ID:      9,
		Author:  actor,
		HTMLURL: evt.Payload.PullRequest.HTMLURL + "#discussion_r9",
	}
	return evt
}
