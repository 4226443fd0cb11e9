// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/rama-judicial/escalafon/internal/config"
	"github.com/rama-judicial/escalafon/internal/infrastructure"
	"github.com/rama-judicial/escalafon/pkg/middleware"
	"github.com/rama-judicial/escalafon/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Authenticate(&cfg.API.Auth, runtime.Logger))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
