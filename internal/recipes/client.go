package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/forkful/forkful/internal/apperror"
	"github.com/forkful/forkful/internal/config"
)

// Client defines the contract against the upstream recipe provider.
// Implementations must map every failure to an apperror kind: the
// caller can tell "provider unreachable" from "provider rejected the
// query" but never sees transport internals.
type Client interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	GetByID(ctx context.Context, id string) (*Recipe, error)
}

// httpClient implements Client over the provider's HTTP API.
type httpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a provider client from config. The HTTP client's
// timeout bounds every request; there is no retry policy.
func NewClient(cfg config.RecipesConfig) Client {
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Search queries the provider's complex search endpoint.
func (c *httpClient) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	params = params.normalize()
	if params.Query == "" {
		return nil, apperror.NewBadRequest("query is required")
	}

	q := url.Values{}
	q.Set("query", params.Query)
	q.Set("offset", strconv.Itoa(params.Offset))
	q.Set("number", strconv.Itoa(params.Number))
	if params.Diet != "" {
		q.Set("diet", params.Diet)
	}
	if params.Cuisine != "" {
		q.Set("cuisine", params.Cuisine)
	}

	var result SearchResult
	if err := c.getJSON(ctx, "/recipes/complexSearch", q, &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		result.Results = []RecipeSummary{}
	}
	return &result, nil
}

// GetByID fetches the detail view for one recipe. An upstream 404 means
// the id names no recipe and is the caller's error, not the provider's.
func (c *httpClient) GetByID(ctx context.Context, id string) (*Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.NewBadRequest("recipe id is required")
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, apperror.NewBadRequest("recipe id must be numeric")
	}

	var recipe Recipe
	err := c.getJSON(ctx, "/recipes/"+id+"/information", url.Values{}, &recipe)
	if err != nil {
		if apperror.IsKind(err, "not_found") {
			return nil, apperror.NewNotFound("recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

// getJSON performs one GET against the provider, injecting the API key,
// and decodes a 2xx body into out.
func (c *httpClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("building provider request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewUpstream("recipe provider unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperror.NewNotFound("not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperror.NewUpstream(
			fmt.Sprintf("recipe provider rejected the request (status %d)", resp.StatusCode),
			nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstream("recipe provider returned an unreadable response", err)
	}
	return nil
}
