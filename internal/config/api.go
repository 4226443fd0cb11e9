package config

import (
	"fmt"
	"os"

	"github.com/rama-judicial/escalafon/pkg/middleware"
	"github.com/rama-judicial/escalafon/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ESCALAFON_CORS_ENABLED",
	Origins:          "ESCALAFON_CORS_ORIGINS",
	AllowedMethods:   "ESCALAFON_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ESCALAFON_CORS_ALLOWED_HEADERS",
	AllowCredentials: "ESCALAFON_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ESCALAFON_CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "ESCALAFON_AUTH_ENABLED",
	Issuer:   "ESCALAFON_AUTH_ISSUER",
	Audience: "ESCALAFON_AUTH_AUDIENCE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ESCALAFON_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ESCALAFON_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, auth, and pagination settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Auth       middleware.AuthConfig `toml:"auth"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, auth, and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("ESCALAFON_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}
