package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/endpointctl/pkg/endpoints"
	"github.com/agentstation/endpointctl/pkg/errors"
	"github.com/agentstation/endpointctl/pkg/logging"
)

// API is the registry surface the registrar consumes. Client satisfies
// it; tests substitute stubs.
type API interface {
	List(ctx context.Context) ([]endpoints.Record, error)
	Create(ctx context.Context, cfg *endpoints.Config) (string, error)
}

var _ API = (*Client)(nil)

// Registrar implements the check-then-create registration flow: an
// endpoint is registered at most once per distinct name, enforced by
// consulting the registry's listing before every creation.
type Registrar struct {
	api   API
	store *endpoints.Store
}

// NewRegistrar creates a registrar over the given registry API and
// local config store.
func NewRegistrar(api API, store *endpoints.Store) *Registrar {
	return &Registrar{api: api, store: store}
}

// Exists reports whether an endpoint with the given name or id is
// already registered.
func (r *Registrar) Exists(ctx context.Context, nameOrID string) (bool, error) {
	records, err := r.api.List(ctx)
	if err != nil {
		return false, errors.WrapResource("check", "existing endpoints", "", err)
	}

	for i := range records {
		if records[i].Matches(nameOrID) {
			return true, nil
		}
	}
	return false, nil
}

// List returns summaries of all registered endpoints.
func (r *Registrar) List(ctx context.Context) ([]endpoints.Summary, error) {
	records, err := r.api.List(ctx)
	if err != nil {
		return nil, errors.WrapResource("list", "registered endpoints", "", err)
	}
	return endpoints.Summaries(records), nil
}

// RegisterByName loads the named endpoint's configuration from the store
// and registers it, skipping registration when the name is already taken.
// The returned string is the user-facing result message.
func (r *Registrar) RegisterByName(ctx context.Context, name string) (string, error) {
	ctx = logging.WithEndpoint(ctx, name)

	exists, err := r.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		logging.Ctx(ctx).Info().Msg("Endpoint already registered, skipping")
		return fmt.Sprintf("Endpoint '%s' already registered", name), nil
	}

	cfg, err := r.store.Load(name)
	if err != nil {
		if errors.IsNotFound(err) {
			available := strings.Join(r.store.Available(), ", ")
			return "", fmt.Errorf("no configuration found for endpoint '%s' (available endpoint configs: [%s])", name, available)
		}
		return "", err
	}

	id, err := r.register(ctx, cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully registered endpoint '%s' with ID: %s", name, id), nil
}

// Register registers an inline endpoint configuration, skipping
// registration when the config's name is already taken.
func (r *Registrar) Register(ctx context.Context, cfg *endpoints.Config) (string, error) {
	name := cfg.Name
	if name != "" {
		ctx = logging.WithEndpoint(ctx, name)

		exists, err := r.Exists(ctx, name)
		if err != nil {
			return "", err
		}
		if exists {
			logging.Ctx(ctx).Info().Msg("Endpoint already registered, skipping")
			return fmt.Sprintf("Endpoint '%s' already registered", name), nil
		}
	}

	id, err := r.register(ctx, cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully registered custom endpoint '%s' with ID: %s", name, id), nil
}

// register validates, defaults, and creates a single endpoint. All
// failures are wrapped into one error naming the endpoint.
func (r *Registrar) register(ctx context.Context, cfg *endpoints.Config) (string, error) {
	name := cfg.Name
	if name == "" {
		name = "unknown"
	}

	if err := cfg.Validate(); err != nil {
		return "", errors.WrapResource("register", "endpoint", name, err)
	}
	cfg.ApplyDefaults()

	id, err := r.api.Create(ctx, cfg)
	if err != nil {
		return "", errors.WrapResource("register", "endpoint", name, err)
	}

	logging.Ctx(ctx).Info().Str("id", id).Msg("Endpoint registered")
	return id, nil
}
