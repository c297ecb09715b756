package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client defines the interface to the remote campaign service.
// All list and write operations are scoped to the campaign configured on the
// concrete client. Retry and backoff are the caller's responsibility; the
// client performs exactly one request per call.
type Client interface {
	// ListCharacters returns all characters in the campaign.
	ListCharacters(ctx context.Context) ([]Character, error)
	// ListItems returns all items in the campaign.
	ListItems(ctx context.Context) ([]Item, error)
	// ListLocations returns all locations in the campaign.
	ListLocations(ctx context.Context) ([]Location, error)
	// ListFactions returns all factions in the campaign.
	ListFactions(ctx context.Context) ([]Faction, error)
	// ListSessions returns all play sessions in the campaign.
	ListSessions(ctx context.Context) ([]Session, error)
	// ListLinks returns all relationship links in the campaign.
	ListLinks(ctx context.Context) ([]Link, error)

	// CreateCharacter creates a character and returns its new id.
	CreateCharacter(ctx context.Context, c Character) (Created, error)
	// CreateItem creates an item and returns its new id.
	CreateItem(ctx context.Context, i Item) (Created, error)
	// CreateLocation creates a location and returns its new id.
	CreateLocation(ctx context.Context, l Location) (Created, error)
	// CreateFaction creates a faction and returns its new id.
	CreateFaction(ctx context.Context, f Faction) (Created, error)
	// CreateLink creates a relationship link and returns its new id.
	CreateLink(ctx context.Context, l Link) (Created, error)

	// UpdateCharacter replaces the mutable fields of a character.
	UpdateCharacter(ctx context.Context, id string, c Character) error
	// UpdateItem replaces the mutable fields of an item.
	UpdateItem(ctx context.Context, id string, i Item) error
	// UpdateLocation replaces the mutable fields of a location.
	UpdateLocation(ctx context.Context, id string, l Location) error
	// UpdateFaction replaces the mutable fields of a faction.
	UpdateFaction(ctx context.Context, id string, f Faction) error

	// DeleteLink removes a relationship link.
	DeleteLink(ctx context.Context, id string) error
}

// NewClient creates a campaign service client from configuration.
func NewClient(cfg Config) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote base URL is required")
	}
	if cfg.CampaignID == "" {
		return nil, fmt.Errorf("remote campaign id is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts; a hung campaign service must
	// not hang a sync run.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		campaignID: cfg.CampaignID,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

type httpClient struct {
	baseURL    string
	token      string
	campaignID string
	http       *http.Client
}

func (c *httpClient) ListCharacters(ctx context.Context) ([]Character, error) {
	var out []Character
	err := c.do(ctx, http.MethodGet, c.path("characters"), nil, &out)
	return out, err
}

func (c *httpClient) ListItems(ctx context.Context) ([]Item, error) {
	var out []Item
	err := c.do(ctx, http.MethodGet, c.path("items"), nil, &out)
	return out, err
}

func (c *httpClient) ListLocations(ctx context.Context) ([]Location, error) {
	var out []Location
	err := c.do(ctx, http.MethodGet, c.path("locations"), nil, &out)
	return out, err
}

func (c *httpClient) ListFactions(ctx context.Context) ([]Faction, error) {
	var out []Faction
	err := c.do(ctx, http.MethodGet, c.path("factions"), nil, &out)
	return out, err
}

func (c *httpClient) ListSessions(ctx context.Context) ([]Session, error) {
	var out []Session
	err := c.do(ctx, http.MethodGet, c.path("sessions"), nil, &out)
	return out, err
}

func (c *httpClient) ListLinks(ctx context.Context) ([]Link, error) {
	var out []Link
	err := c.do(ctx, http.MethodGet, c.path("links"), nil, &out)
	return out, err
}

func (c *httpClient) CreateCharacter(ctx context.Context, ch Character) (Created, error) {
	if err := checkDescription(ch.Description); err != nil {
		return Created{}, err
	}
	var out Created
	err := c.do(ctx, http.MethodPost, c.path("characters"), ch, &out)
	return out, err
}

func (c *httpClient) CreateItem(ctx context.Context, i Item) (Created, error) {
	if err := checkDescription(i.Description); err != nil {
		return Created{}, err
	}
	var out Created
	err := c.do(ctx, http.MethodPost, c.path("items"), i, &out)
	return out, err
}

func (c *httpClient) CreateLocation(ctx context.Context, l Location) (Created, error) {
	if err := checkDescription(l.Description); err != nil {
		return Created{}, err
	}
	var out Created
	err := c.do(ctx, http.MethodPost, c.path("locations"), l, &out)
	return out, err
}

func (c *httpClient) CreateFaction(ctx context.Context, f Faction) (Created, error) {
	if err := checkDescription(f.Description); err != nil {
		return Created{}, err
	}
	var out Created
	err := c.do(ctx, http.MethodPost, c.path("factions"), f, &out)
	return out, err
}

func (c *httpClient) CreateLink(ctx context.Context, l Link) (Created, error) {
	var out Created
	err := c.do(ctx, http.MethodPost, c.path("links"), l, &out)
	return out, err
}

func (c *httpClient) UpdateCharacter(ctx context.Context, id string, ch Character) error {
	if err := checkDescription(ch.Description); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, c.path("characters")+"/"+id, ch, nil)
}

func (c *httpClient) UpdateItem(ctx context.Context, id string, i Item) error {
	if err := checkDescription(i.Description); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, c.path("items")+"/"+id, i, nil)
}

func (c *httpClient) UpdateLocation(ctx context.Context, id string, l Location) error {
	if err := checkDescription(l.Description); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, c.path("locations")+"/"+id, l, nil)
}

func (c *httpClient) UpdateFaction(ctx context.Context, id string, f Faction) error {
	if err := checkDescription(f.Description); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, c.path("factions")+"/"+id, f, nil)
}

func (c *httpClient) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.path("links")+"/"+id, nil, nil)
}

func (c *httpClient) path(resource string) string {
	return fmt.Sprintf("%s/campaigns/%s/%s", c.baseURL, c.campaignID, resource)
}

// do performs a single request and decodes the JSON response into out.
// A 422 response is mapped to ErrDescriptionTooLong; other non-2xx statuses
// become an *APIError.
func (c *httpClient) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("campaign service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %s", ErrDescriptionTooLong, strings.TrimSpace(string(raw)))
		}
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkDescription enforces the service description limit client-side.
func checkDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return fmt.Errorf("%w (%d > %d)", ErrDescriptionTooLong, len(desc), MaxDescriptionLength)
	}
	return nil
}
