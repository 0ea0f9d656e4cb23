package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/github2range/internal/models"
	"github.com/thomas-vilte/github2range/internal/webhook"
)

type (
	MockEventSource struct {
		mock.Mock
	}

	MockDeliverer struct {
		mock.Mock
	}
)

func (m *MockEventSource) GetAuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockEventSource) ListOrganizations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEventSource) ListOrgEvents(ctx context.Context, username, org string, page, perPage int) ([]models.Event, error) {
	args := m.Called(ctx, username, org, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockDeliverer) Deliver(ctx context.Context, s models.Suggestion) (*webhook.DeliveryResult, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhook.DeliveryResult), args.Error(1)
}
