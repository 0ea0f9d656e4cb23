package regex

import "regexp"

var (
	// PullRequestPath matches the trailing "/pull/<number>" of a pull request web URL.
	PullRequestPath = regexp.MustCompile(`/pull/[0-9]+$`)

	// GitHubPRURL splits a pull request web URL into host, owner, repo and number.
	GitHubPRURL = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+)/pull/([0-9]+)$`)
)
