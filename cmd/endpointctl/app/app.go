// Package app provides the application context and dependency management
// for the endpointctl CLI. It centralizes configuration, logging, and the
// registry client behind one struct that commands receive through narrow
// interfaces.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/endpointctl/internal/cmd/output"
	"github.com/agentstation/endpointctl/pkg/endpoints"
	"github.com/agentstation/endpointctl/pkg/errors"
	"github.com/agentstation/endpointctl/pkg/registry"
)

// App represents the endpointctl application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Registry client (lazy-initialized, singleton)
	mu       sync.RWMutex
	registry *registry.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Format returns the output format resolved from flags and terminal
// detection.
func (a *App) Format() output.Format {
	return output.DetectFormat(a.config.Format)
}

// Store returns the endpoint config store for the configured directory.
func (a *App) Store() *endpoints.Store {
	return endpoints.NewStore(a.config.EndpointsDir)
}

// Registry returns the registry client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Registry() (*registry.Client, error) {
	a.mu.RLock()
	if a.registry != nil {
		client := a.registry
		a.mu.RUnlock()
		return client, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry != nil {
		return a.registry, nil
	}

	if a.config.RegistryURL == "" {
		return nil, errors.NewConfigError("registry", "registry URL is not set", nil)
	}

	opts := []registry.Option{
		registry.WithTimeout(a.config.RequestTimeout),
	}
	if a.config.RegistryAPIKey != "" {
		opts = append(opts, registry.WithAPIKey(a.config.RegistryAPIKey))
	}

	a.registry = registry.New(a.config.RegistryURL, opts...)
	return a.registry, nil
}

// Registrar returns a registrar wired to the registry client and the
// endpoint config store.
func (a *App) Registrar() (*registry.Registrar, error) {
	client, err := a.Registry()
	if err != nil {
		return nil, err
	}
	return registry.NewRegistrar(client, a.Store()), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRegistry sets a custom registry client (useful for testing).
func WithRegistry(client *registry.Client) Option {
	return func(a *App) error {
		a.registry = client
		return nil
	}
}
