package vcs

import (
	"context"

	"github.com/thomas-vilte/github2range/internal/models"
)

// EventSource defines the calls the sync makes against a version control provider.
type EventSource interface {
	// GetAuthenticatedUser gets the login of the user the token belongs to.
	GetAuthenticatedUser(ctx context.Context) (string, error)
	// ListOrganizations gets the logins of the organizations the user is a member of, in API order.
	ListOrganizations(ctx context.Context) ([]string, error)
	// ListOrgEvents gets one page of the user's organization event feed, newest first.
	ListOrgEvents(ctx context.Context, username, org string, page, perPage int) ([]models.Event, error)
}
