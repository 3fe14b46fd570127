// Package store is the REST client for a catalog store instance. It covers
// exactly the surface the migration consumes: paginated listing of brands,
// categories, and products, and one-at-a-time creation of the same.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/storesync/migrator/internal/domain/catalog"
)

const (
	// pageLimit is the fixed page size used when walking listings.
	pageLimit = 250

	// maxResponseSize limits the response body size to prevent memory
	// exhaustion on a misbehaving server.
	maxResponseSize = 10 * 1024 * 1024
)

// Errors for store API requests
var (
	// ErrRequestFailed covers transport-level failures and non-2xx
	// listing responses. A listing failure is fatal for the whole fetch:
	// a partial page set would silently drop references downstream.
	ErrRequestFailed = errors.New("store: request failed")

	// ErrCreateRejected covers non-2xx creation responses. Creation
	// failures are per-item: the caller records them and continues.
	ErrCreateRejected = errors.New("store: create rejected")

	// ErrInvalidResponse covers responses that cannot be decoded.
	ErrInvalidResponse = errors.New("store: invalid response")
)

// Client talks to one store's catalog API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a catalog API client for the configured store.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}, nil
}

// StoreHash returns the hash of the store this client targets.
func (c *Client) StoreHash() string {
	return c.config.StoreHash
}

// ListBrands returns every brand in the store across all pages.
func (c *Client) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	return listAll[catalog.Brand](ctx, c, "brands")
}

// ListCategories returns every category in the store across all pages.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return listAll[catalog.Category](ctx, c, "categories")
}

// ListProducts returns every product in the store across all pages.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return listAll[catalog.Product](ctx, c, "products")
}

// CreateBrand creates one brand and returns its store-assigned identifier.
func (c *Client) CreateBrand(ctx context.Context, payload catalog.BrandPayload) (int, error) {
	return c.create(ctx, "brands", payload)
}

// CreateCategory creates one category and returns its store-assigned
// identifier.
func (c *Client) CreateCategory(ctx context.Context, payload catalog.CategoryPayload) (int, error) {
	return c.create(ctx, "categories", payload)
}

// CreateProduct creates one product and returns its store-assigned
// identifier.
func (c *Client) CreateProduct(ctx context.Context, payload catalog.ProductPayload) (int, error) {
	return c.create(ctx, "products", payload)
}

// listAll walks a paginated collection endpoint starting at page 1 and keeps
// requesting while the server reports a next-page link. Any page failure
// aborts the whole fetch; the caller never sees a partial page set.
func listAll[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	var items []T
	for page := 1; ; page++ {
		var envelope struct {
			Data []T      `json:"data"`
			Meta listMeta `json:"meta"`
		}
		if err := c.getPage(ctx, resource, page, &envelope); err != nil {
			return nil, err
		}
		items = append(items, envelope.Data...)
		if envelope.Meta.Pagination.Links.Next == "" {
			return items, nil
		}
	}
}

// getPage requests a single listing page and decodes it into out.
func (c *Client) getPage(ctx context.Context, resource string, page int, out any) error {
	url := fmt.Sprintf("%s/stores/%s/v3/catalog/%s?limit=%d&page=%d",
		c.config.APIBaseURL, c.config.StoreHash, resource, pageLimit, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: listing %s page %d: %v", ErrRequestFailed, resource, page, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: listing %s page %d: %v", ErrRequestFailed, resource, page, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: listing %s page %d: %s", ErrRequestFailed, resource, page, errorDetail(resp.StatusCode, body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: listing %s page %d: %v", ErrInvalidResponse, resource, page, err)
	}
	return nil
}

// create submits one resource-creation request and returns the identifier
// the destination store assigned.
func (c *Client) create(ctx context.Context, resource string, payload any) (int, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding %s payload: %v", ErrCreateRejected, resource, err)
	}

	url := fmt.Sprintf("%s/stores/%s/v3/catalog/%s", c.config.APIBaseURL, c.config.StoreHash, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreateRejected, err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreateRejected, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, fmt.Errorf("%w: reading response: %v", ErrCreateRejected, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: %s", ErrCreateRejected, errorDetail(resp.StatusCode, body))
	}

	var created createdResource
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("%w: decoding create response: %v", ErrInvalidResponse, err)
	}
	return created.Data.ID, nil
}

// setHeaders applies the store token and content negotiation headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Auth-Token", c.config.AccessToken)
	req.Header.Set("Accept", "application/json")
}

// errorDetail extracts the server's reported error detail from an error
// body, falling back to the HTTP status when the body carries none.
func errorDetail(statusCode int, body []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if detail := apiErr.detail(); detail != "" {
			return detail
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
