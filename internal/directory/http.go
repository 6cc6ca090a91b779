package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/therapick/therapick-api/internal/types"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRadius  = 25
	defaultLimit   = 20
)

// httpClient talks to the TherapAPI REST provider. Failures surface once
// per request; there is no retry loop.
type httpClient struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

// NewHTTP builds a TherapAPI-backed directory client.
func NewHTTP(apiKey, baseURL string) Client {
	return &httpClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		hc:      &http.Client{Timeout: defaultTimeout},
	}
}

func (c *httpClient) Mode() string {
	return "therapapi"
}

// searchEnvelope is the provider's list payload shape.
type searchEnvelope struct {
	Data    []types.Therapist `json:"data"`
	Total   int               `json:"total"`
	HasMore bool              `json:"hasMore"`
}

func (c *httpClient) Search(ctx context.Context, params types.SearchParams) (*types.SearchResult, error) {
	q := url.Values{}
	if params.Location != "" {
		q.Set("location", params.Location)
	}
	if params.Latitude != nil && params.Longitude != nil {
		q.Set("lat", strconv.FormatFloat(*params.Latitude, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(*params.Longitude, 'f', -1, 64))
	}
	radius := params.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	q.Set("radius", strconv.Itoa(radius))
	if len(params.Specialties) > 0 {
		q.Set("specialties", strings.Join(params.Specialties, ","))
	}
	if len(params.Insurance) > 0 {
		q.Set("insurance", strings.Join(params.Insurance, ","))
	}
	if params.Gender != "" {
		q.Set("gender", params.Gender)
	}
	if params.Language != "" {
		q.Set("language", params.Language)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(params.Offset))

	var envelope searchEnvelope
	if err := c.get(ctx, "/therapists?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}

	therapists := envelope.Data
	if therapists == nil {
		therapists = []types.Therapist{}
	}
	return &types.SearchResult{
		Therapists: therapists,
		Total:      envelope.Total,
		HasMore:    envelope.HasMore,
	}, nil
}

func (c *httpClient) GetByID(ctx context.Context, id string) (*types.Therapist, error) {
	var envelope struct {
		Data *types.Therapist `json:"data"`
	}
	if err := c.get(ctx, "/therapists/"+url.PathEscape(id), &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, ErrNotFound
	}
	return envelope.Data, nil
}

func (c *httpClient) Reviews(ctx context.Context, id string) ([]types.Review, error) {
	var envelope struct {
		Data []types.Review `json:"data"`
	}
	if err := c.get(ctx, "/therapists/"+url.PathEscape(id)+"/reviews", &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []types.Review{}, nil
	}
	return envelope.Data, nil
}

func (c *httpClient) Specialties(ctx context.Context) ([]string, error) {
	var envelope struct {
		Data []string `json:"data"`
	}
	if err := c.get(ctx, "/specialties", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// get performs one GET against the provider and decodes the body into out.
func (c *httpClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("directory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Printf("therapapi request failed: %v", err)
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		log.Printf("therapapi %s returned %d", path, resp.StatusCode)
		return ErrUnavailable
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("therapapi %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("therapapi %s: bad payload: %v", path, err)
		return ErrUnavailable
	}
	return nil
}
