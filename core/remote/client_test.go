package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:    srv.URL,
		Token:      "test-token",
		CampaignID: "camp-1",
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{CampaignID: "camp-1"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "https://example.test"})
	assert.Error(t, err)
}

func TestListCharacters(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/campaigns/camp-1/characters", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]Character{
			{ID: "c1", Name: "Mira", Type: "PC"},
			{ID: "c2", Name: "Old Tom", Type: "NPC"},
		})
	})

	chars, err := client.ListCharacters(context.Background())
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, "Mira", chars[0].Name)
	assert.Equal(t, "PC", chars[0].Type)
}

func TestCreateCharacter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/campaigns/camp-1/characters", r.URL.Path)

		var got Character
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Mira", got.Name)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Created{ID: "c-new"})
	})

	created, err := client.CreateCharacter(context.Background(), Character{Name: "Mira", Type: "PC"})
	require.NoError(t, err)
	assert.Equal(t, "c-new", created.ID)
}

func TestDescriptionTooLong_ClientSide(t *testing.T) {
	// Server must never be reached; the client rejects before sending.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server")
	})

	long := strings.Repeat("a", MaxDescriptionLength+1)
	_, err := client.CreateCharacter(context.Background(), Character{Name: "X", Description: long})
	assert.ErrorIs(t, err, ErrDescriptionTooLong)

	err = client.UpdateItem(context.Background(), "i1", Item{Name: "X", Description: long})
	assert.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestDescriptionTooLong_ServerSide(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"description too long"}`))
	})

	err := client.UpdateCharacter(context.Background(), "c1", Character{Name: "X"})
	assert.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestGenericAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := client.ListItems(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.NotErrorIs(t, err, ErrDescriptionTooLong)
}

func TestDeleteLink(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/campaigns/camp-1/links/l1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteLink(context.Background(), "l1"))
}
