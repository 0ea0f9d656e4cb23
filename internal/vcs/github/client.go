package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/github2range/internal/errors"
	"github.com/thomas-vilte/github2range/internal/logger"
	"github.com/thomas-vilte/github2range/internal/models"
	"github.com/thomas-vilte/github2range/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.EventSource = (*GitHubClient)(nil)

const (
	defaultHost  = "api.github.com"
	orgsPageSize = 100
)

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type OrganizationsService interface {
	List(ctx context.Context, user string, opts *github.ListOptions) ([]*github.Organization, *github.Response, error)
}

type ActivityService interface {
	ListUserEventsForOrganization(ctx context.Context, org, user string, opts *github.ListOptions) ([]*github.Event, *github.Response, error)
}

type GitHubClient struct {
	usersService    UsersService
	orgsService     OrganizationsService
	activityService ActivityService
}

// NewGitHubClient builds a client for host authenticated with token. Any host
// other than api.github.com is treated as a GitHub Enterprise API root.
func NewGitHubClient(host, token, userAgent string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if userAgent != "" {
		client.UserAgent = userAgent
	}

	if host != "" && host != defaultHost {
		baseURL, err := apiBaseURL(host)
		if err != nil {
			return nil, err
		}
		client.BaseURL = baseURL
	}

	return NewGitHubClientWithServices(client.Users, client.Organizations, client.Activity), nil
}

func NewGitHubClientWithServices(usersService UsersService, orgsService OrganizationsService, activityService ActivityService) *GitHubClient {
	return &GitHubClient{
		usersService:    usersService,
		orgsService:     orgsService,
		activityService: activityService,
	}
}

// apiBaseURL turns a configured host into the base URL go-github expects,
// which must end with a slash.
func apiBaseURL(host string) (*url.URL, error) {
	raw := host
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, domainErrors.ErrGitHubHost.WithError(err).WithContext("host", host)
	}
	return u, nil
}

func (ghc *GitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return "", mapError(resp, err, "get authenticated user")
	}

	if user.GetLogin() == "" {
		return "", fmt.Errorf("authenticated user has no login")
	}

	return user.GetLogin(), nil
}

func (ghc *GitHubClient) ListOrganizations(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	var orgs []string
	opts := &github.ListOptions{PerPage: orgsPageSize}
	for {
		page, resp, err := ghc.orgsService.List(ctx, "", opts)
		if err != nil {
			return nil, domainErrors.ErrListOrgs.WithError(mapError(resp, err, "list organizations"))
		}

		for _, org := range page {
			orgs = append(orgs, org.GetLogin())
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("listed github organizations", "count", len(orgs))
	return orgs, nil
}

func (ghc *GitHubClient) ListOrgEvents(ctx context.Context, username, org string, page, perPage int) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github org events",
		"org", org,
		"user", username,
		"page", page)

	events, resp, err := ghc.activityService.ListUserEventsForOrganization(ctx, org, username, &github.ListOptions{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, domainErrors.ErrListEvents.
			WithError(mapError(resp, err, "list organization events")).
			WithContext("org", org).
			WithContext("page", page)
	}

	result := make([]models.Event, 0, len(events))
	for _, evt := range events {
		converted, err := toModelEvent(evt)
		if err != nil {
			log.Warn("could not parse event payload",
				"org", org,
				"event_id", evt.GetID(),
				"type", evt.GetType(),
				"error", err)
		}
		result = append(result, converted)
	}

	return result, nil
}

// toModelEvent converts a github.Event. On a payload parse error the event is
// still returned, with an empty payload.
func toModelEvent(evt *github.Event) (models.Event, error) {
	kind := models.KindFromType(evt.GetType())
	out := models.Event{
		ID:        evt.GetID(),
		Kind:      kind,
		RawType:   evt.GetType(),
		Actor:     evt.GetActor().GetLogin(),
		CreatedAt: evt.GetCreatedAt().Time,
		Org:       evt.GetOrg().GetLogin(),
		Repo: models.Repository{
			Name: evt.GetRepo().GetName(),
			URL:  evt.GetRepo().GetURL(),
		},
	}

	if kind == models.EventUnknown || evt.RawPayload == nil {
		return out, nil
	}

	payload, err := evt.ParsePayload()
	if err != nil {
		return out, err
	}

	switch p := payload.(type) {
	case *github.PullRequestEvent:
		out.Payload = models.EventPayload{
			Action:      p.GetAction(),
			PullRequest: toModelPullRequest(p.PullRequest),
		}
	case *github.PullRequestReviewCommentEvent:
		out.Payload = models.EventPayload{
			Action:      p.GetAction(),
			PullRequest: toModelPullRequest(p.PullRequest),
		}
		if p.Comment != nil {
			out.Payload.Comment = &models.ReviewComment{
				ID:      p.Comment.GetID(),
				Author:  p.Comment.GetUser().GetLogin(),
				HTMLURL: p.Comment.GetHTMLURL(),
			}
		}
	}

	return out, nil
}

func toModelPullRequest(pr *github.PullRequest) *models.PullRequest {
	if pr == nil {
		return nil
	}

	var closedAt *time.Time
	if pr.ClosedAt != nil {
		t := pr.ClosedAt.Time
		closedAt = &t
	}

	return &models.PullRequest{
		ID:        pr.GetID(),
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		HTMLURL:   pr.GetHTMLURL(),
		State:     pr.GetState(),
		Author:    pr.GetUser().GetLogin(),
		Merged:    pr.GetMerged(),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
		ClosedAt:  closedAt,
	}
}

// mapError turns well-known GitHub failures into AppErrors. Rate limits are
// surfaced, never waited out.
func mapError(resp *github.Response, err error, operation string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return domainErrors.ErrGitHubRateLimit.
			WithError(err).
			WithContext("operation", operation).
			WithContext("reset", rateErr.Rate.Reset.Time)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.
			WithError(err).
			WithContext("operation", operation)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithContext("operation", operation)
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.
				WithError(err).
				WithContext("operation", operation)
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}
