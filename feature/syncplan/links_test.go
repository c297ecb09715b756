package syncplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-sync/core/remote"
	"campaign-sync/core/remote/mocks"
	"campaign-sync/feature/linkgraph"
	"campaign-sync/feature/world"
)

func TestPushLinks_CreatesMissingEdges(t *testing.T) {
	store := newMemStore(
		world.Record{ID: "l1", Kind: world.KindCharacter, Name: "Mira", RemoteID: "r1"},
		world.Record{ID: "l2", Kind: world.KindItem, Name: "Sunblade", RemoteID: "r2"},
		world.Record{ID: "l3", Kind: world.KindFaction, Name: "Iron Pact"},
	)
	graph := linkgraph.NewGraph()
	graph.OutboundByFromID["l1"] = world.OutboundRefs{
		Items: []string{"l2"},
		// No remote id on l3, so this edge is not pushable.
		Factions: []string{"l3"},
	}

	client := new(mocks.Client)
	client.On("ListLinks", mock.Anything).Return([]remote.Link{}, nil)
	client.On("CreateLink", mock.Anything, remote.Link{
		FromID: "r1", FromKind: "character", ToID: "r2", ToKind: "item",
	}).Return(remote.Created{ID: "lk1"}, nil).Once()

	report, err := PushLinks(context.Background(), client, store, graph, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Zero(t, report.Removed)
	client.AssertExpectations(t)
}

func TestPushLinks_SkipsExistingEdges(t *testing.T) {
	store := newMemStore(
		world.Record{ID: "l1", Kind: world.KindCharacter, RemoteID: "r1"},
		world.Record{ID: "l2", Kind: world.KindItem, RemoteID: "r2"},
	)
	graph := linkgraph.NewGraph()
	graph.OutboundByFromID["l1"] = world.OutboundRefs{Items: []string{"l2"}}

	client := new(mocks.Client)
	client.On("ListLinks", mock.Anything).Return([]remote.Link{
		{ID: "lk1", FromID: "r1", FromKind: "character", ToID: "r2", ToKind: "item"},
	}, nil)

	report, err := PushLinks(context.Background(), client, store, graph, zap.NewNop())
	require.NoError(t, err)

	assert.Zero(t, report.Created)
	assert.Zero(t, report.Removed)
	client.AssertNotCalled(t, "CreateLink", mock.Anything, mock.Anything)
}

func TestPushLinks_RemovesStaleManagedLinks(t *testing.T) {
	store := newMemStore(
		world.Record{ID: "l1", Kind: world.KindCharacter, RemoteID: "r1"},
		world.Record{ID: "l2", Kind: world.KindItem, RemoteID: "r2"},
	)
	graph := linkgraph.NewGraph()

	client := new(mocks.Client)
	client.On("ListLinks", mock.Anything).Return([]remote.Link{
		// Both endpoints are under local management and the edge is no
		// longer wanted.
		{ID: "lk-stale", FromID: "r1", ToID: "r2"},
		// One endpoint is a remote-only record; never touched.
		{ID: "lk-foreign", FromID: "r1", ToID: "r-external"},
	}, nil)
	client.On("DeleteLink", mock.Anything, "lk-stale").Return(nil).Once()

	report, err := PushLinks(context.Background(), client, store, graph, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Removed)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "DeleteLink", mock.Anything, "lk-foreign")
}

func TestPushLinks_CountsFailures(t *testing.T) {
	store := newMemStore(
		world.Record{ID: "l1", Kind: world.KindCharacter, RemoteID: "r1"},
		world.Record{ID: "l2", Kind: world.KindItem, RemoteID: "r2"},
	)
	graph := linkgraph.NewGraph()
	graph.OutboundByFromID["l1"] = world.OutboundRefs{Items: []string{"l2"}}

	client := new(mocks.Client)
	client.On("ListLinks", mock.Anything).Return([]remote.Link{}, nil)
	client.On("CreateLink", mock.Anything, mock.Anything).
		Return(remote.Created{}, assert.AnError)

	report, err := PushLinks(context.Background(), client, store, graph, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Created)
}
