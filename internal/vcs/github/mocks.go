package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	var u *github.User
	if args.Get(0) != nil {
		u = args.Get(0).(*github.User)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return u, resp, args.Error(2)
}

type MockOrganizationsService struct {
	mock.Mock
}

func (m *MockOrganizationsService) List(ctx context.Context, user string, opts *github.ListOptions) ([]*github.Organization, *github.Response, error) {
	args := m.Called(ctx, user, opts)
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return args.Get(0).([]*github.Organization), resp, args.Error(2)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) ListUserEventsForOrganization(ctx context.Context, org, user string, opts *github.ListOptions) ([]*github.Event, *github.Response, error) {
	args := m.Called(ctx, org, user, opts)
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return args.Get(0).([]*github.Event), resp, args.Error(2)
}
