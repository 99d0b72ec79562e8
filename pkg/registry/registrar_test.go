package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/endpointctl/pkg/endpoints"
	"github.com/agentstation/endpointctl/pkg/errors"
	"github.com/agentstation/endpointctl/pkg/registry"
)

// stubAPI is a canned registry API for registrar tests.
type stubAPI struct {
	records     []endpoints.Record
	listErr     error
	createID    string
	createErr   error
	createCalls []*endpoints.Config
}

func (s *stubAPI) List(context.Context) ([]endpoints.Record, error) {
	return s.records, s.listErr
}

func (s *stubAPI) Create(_ context.Context, cfg *endpoints.Config) (string, error) {
	s.createCalls = append(s.createCalls, cfg)
	return s.createID, s.createErr
}

func newTestStore(t *testing.T, files map[string]string) *endpoints.Store {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return endpoints.NewStore(dir)
}

func TestRegistrarRegisterByName(t *testing.T) {
	files := map[string]string{
		"openai-gpt4.json": `{"name":"openai-gpt4","connector_type":"openai-connector","model":"gpt-4"}`,
	}

	t.Run("registers new endpoint", func(t *testing.T) {
		api := &stubAPI{createID: "ep-42"}
		reg := registry.NewRegistrar(api, newTestStore(t, files))

		msg, err := reg.RegisterByName(context.Background(), "openai-gpt4")
		require.NoError(t, err)
		assert.Equal(t, "Successfully registered endpoint 'openai-gpt4' with ID: ep-42", msg)

		require.Len(t, api.createCalls, 1)
		created := api.createCalls[0]
		assert.Equal(t, 2, created.MaxCallsPerSecond, "defaults should be applied before creation")
		assert.Equal(t, 1, created.MaxConcurrency)
		assert.NotNil(t, created.Params)
	})

	t.Run("already registered by name skips creation", func(t *testing.T) {
		api := &stubAPI{records: []endpoints.Record{{ID: "ep-1", Name: "openai-gpt4"}}}
		reg := registry.NewRegistrar(api, newTestStore(t, files))

		msg, err := reg.RegisterByName(context.Background(), "openai-gpt4")
		require.NoError(t, err)
		assert.Equal(t, "Endpoint 'openai-gpt4' already registered", msg)
		assert.Empty(t, api.createCalls, "creation API must not be called")
	})

	t.Run("already registered by id skips creation", func(t *testing.T) {
		api := &stubAPI{records: []endpoints.Record{{ID: "openai-gpt4", Name: "something-else"}}}
		reg := registry.NewRegistrar(api, newTestStore(t, files))

		msg, err := reg.RegisterByName(context.Background(), "openai-gpt4")
		require.NoError(t, err)
		assert.Equal(t, "Endpoint 'openai-gpt4' already registered", msg)
		assert.Empty(t, api.createCalls)
	})

	t.Run("missing config lists available", func(t *testing.T) {
		api := &stubAPI{}
		reg := registry.NewRegistrar(api, newTestStore(t, files))

		_, err := reg.RegisterByName(context.Background(), "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no configuration found for endpoint 'nope'")
		assert.Contains(t, err.Error(), "openai-gpt4")
	})

	t.Run("listing failure surfaces", func(t *testing.T) {
		api := &stubAPI{listErr: errors.New("backend down")}
		reg := registry.NewRegistrar(api, newTestStore(t, files))

		_, err := reg.RegisterByName(context.Background(), "openai-gpt4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check existing endpoints")
	})

	t.Run("creation failure names the endpoint", func(t *testing.T) {
		api := &stubAPI{createErr: errors.New("boom")}
		reg := registry.NewRegistrar(api, newTestStore(t, files))

		_, err := reg.RegisterByName(context.Background(), "openai-gpt4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to register endpoint "openai-gpt4"`)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestRegistrarRegister(t *testing.T) {
	t.Run("registers custom config", func(t *testing.T) {
		api := &stubAPI{createID: "ep-7"}
		reg := registry.NewRegistrar(api, newTestStore(t, nil))

		cfg := &endpoints.Config{Name: "custom", ConnectorType: "openai-connector", Model: "gpt-4"}
		msg, err := reg.Register(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, "Successfully registered custom endpoint 'custom' with ID: ep-7", msg)
	})

	t.Run("missing required fields fail validation", func(t *testing.T) {
		api := &stubAPI{}
		reg := registry.NewRegistrar(api, newTestStore(t, nil))

		cfg := &endpoints.Config{Name: "x"}
		_, err := reg.Register(context.Background(), cfg)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "connector_type")
		assert.Contains(t, err.Error(), "model")
		assert.Empty(t, api.createCalls)
	})

	t.Run("already registered custom config skips creation", func(t *testing.T) {
		api := &stubAPI{records: []endpoints.Record{{ID: "ep-1", Name: "custom"}}}
		reg := registry.NewRegistrar(api, newTestStore(t, nil))

		cfg := &endpoints.Config{Name: "custom", ConnectorType: "c", Model: "m"}
		msg, err := reg.Register(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, "Endpoint 'custom' already registered", msg)
		assert.Empty(t, api.createCalls)
	})
}

func TestRegistrarExists(t *testing.T) {
	api := &stubAPI{records: []endpoints.Record{{ID: "ep-1", Name: "a"}}}
	reg := registry.NewRegistrar(api, newTestStore(t, nil))

	exists, err := reg.Exists(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = reg.Exists(context.Background(), "b")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegistrarList(t *testing.T) {
	api := &stubAPI{records: []endpoints.Record{
		{ID: "ep-1", Name: "a", Model: "m1", ConnectorType: "c1"},
	}}
	reg := registry.NewRegistrar(api, newTestStore(t, nil))

	summaries, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, endpoints.Summary{Name: "a", Model: "m1", ConnectorType: "c1", ID: "ep-1"}, summaries[0])

	t.Run("listing failure wrapped", func(t *testing.T) {
		failing := &stubAPI{listErr: errors.New("down")}
		reg := registry.NewRegistrar(failing, newTestStore(t, nil))

		_, err := reg.List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list registered endpoints")
	})
}
