package store

import "errors"

// DefaultAPIBaseURL is the production catalog API endpoint.
const DefaultAPIBaseURL = "https://api.bigcommerce.com"

// Errors for store client configuration
var (
	ErrConfigMissingStoreHash   = errors.New("store: store hash is required")
	ErrConfigMissingAccessToken = errors.New("store: access token is required")
)

// Config holds the connection settings for one store's catalog API.
type Config struct {
	// StoreHash identifies the store instance within the platform
	StoreHash string
	// AccessToken is the store-scoped API token sent on every request
	AccessToken string
	// APIBaseURL is the base URL for the catalog API
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewConfig creates a store configuration with defaults.
func NewConfig(storeHash, accessToken string) *Config {
	return &Config{
		StoreHash:      storeHash,
		AccessToken:    accessToken,
		APIBaseURL:     DefaultAPIBaseURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.StoreHash == "" {
		return ErrConfigMissingStoreHash
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
