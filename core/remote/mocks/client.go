package mocks

import (
	"context"

	"campaign-sync/core/remote"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of remote.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListCharacters(ctx context.Context) ([]remote.Character, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]remote.Character); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListItems(ctx context.Context) ([]remote.Item, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]remote.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListLocations(ctx context.Context) ([]remote.Location, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]remote.Location); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListFactions(ctx context.Context) ([]remote.Faction, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]remote.Faction); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListSessions(ctx context.Context) ([]remote.Session, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]remote.Session); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListLinks(ctx context.Context) ([]remote.Link, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]remote.Link); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateCharacter(ctx context.Context, c remote.Character) (remote.Created, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(remote.Created), args.Error(1)
}

func (m *Client) CreateItem(ctx context.Context, i remote.Item) (remote.Created, error) {
	args := m.Called(ctx, i)
	return args.Get(0).(remote.Created), args.Error(1)
}

func (m *Client) CreateLocation(ctx context.Context, l remote.Location) (remote.Created, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(remote.Created), args.Error(1)
}

func (m *Client) CreateFaction(ctx context.Context, f remote.Faction) (remote.Created, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(remote.Created), args.Error(1)
}

func (m *Client) CreateLink(ctx context.Context, l remote.Link) (remote.Created, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(remote.Created), args.Error(1)
}

func (m *Client) UpdateCharacter(ctx context.Context, id string, c remote.Character) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *Client) UpdateItem(ctx context.Context, id string, i remote.Item) error {
	args := m.Called(ctx, id, i)
	return args.Error(0)
}

func (m *Client) UpdateLocation(ctx context.Context, id string, l remote.Location) error {
	args := m.Called(ctx, id, l)
	return args.Error(0)
}

func (m *Client) UpdateFaction(ctx context.Context, id string, f remote.Faction) error {
	args := m.Called(ctx, id, f)
	return args.Error(0)
}

func (m *Client) DeleteLink(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
