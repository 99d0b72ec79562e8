package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestApp creates an app whose root command writes to buffers.
func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New("test", "none", "now", "tests")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// runRoot executes the root command with args, capturing output.
func runRoot(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	rootCmd := app.createRootCommand()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newRegistryServer fakes the backend's listing and creation operations.
func newRegistryServer(t *testing.T, listing string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/llm-endpoints" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(listing))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"ep-new"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// TestExecute_NoCommand verifies zero arguments is a usage error.
func TestExecute_NoCommand(t *testing.T) {
	app := newTestApp(t)

	out, err := runRoot(t, app)
	if err == nil {
		t.Fatal("expected error when invoked without a command")
	}
	if !strings.Contains(out, "Usage:") {
		t.Error("usage not printed for empty invocation")
	}
}

// TestExecute_UnknownCommand verifies unknown commands fail.
func TestExecute_UnknownCommand(t *testing.T) {
	app := newTestApp(t)

	_, err := runRoot(t, app, "frobnicate")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
}

// TestExecute_Check verifies the check command end to end.
func TestExecute_Check(t *testing.T) {
	server := newRegistryServer(t, `[{"id":"ep-1","name":"openai-gpt4"}]`)

	t.Run("existing endpoint", func(t *testing.T) {
		app := newTestApp(t)
		out, err := runRoot(t, app, "check", "openai-gpt4", "--registry", server.URL)
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if !strings.Contains(out, "Endpoint 'openai-gpt4' exists in registry") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("missing endpoint", func(t *testing.T) {
		app := newTestApp(t)
		out, err := runRoot(t, app, "check", "absent", "--registry", server.URL)
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if !strings.Contains(out, "Endpoint 'absent' does not exist in registry") {
			t.Errorf("unexpected output: %q", out)
		}
	})
}

// TestExecute_Register verifies the register command end to end.
func TestExecute_Register(t *testing.T) {
	server := newRegistryServer(t, `[]`)

	dir := t.TempDir()
	config := `{"name":"openai-gpt4","connector_type":"openai-connector","model":"gpt-4"}`
	if err := os.WriteFile(filepath.Join(dir, "openai-gpt4.json"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t)
	out, err := runRoot(t, app, "register", "openai-gpt4",
		"--registry", server.URL, "--endpoints-dir", dir)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !strings.Contains(out, "Successfully registered endpoint 'openai-gpt4' with ID: ep-new") {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestExecute_RegisterJSON verifies inline registration validation.
func TestExecute_RegisterJSON(t *testing.T) {
	server := newRegistryServer(t, `[]`)

	app := newTestApp(t)
	_, err := runRoot(t, app, "register-json", `{"name":"x"}`, "--registry", server.URL)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "connector_type") || !strings.Contains(err.Error(), "model") {
		t.Errorf("error should list missing fields, got: %v", err)
	}
}

// TestExecute_ListAvailable verifies config enumeration through the CLI.
func TestExecute_ListAvailable(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a-connector.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	app := newTestApp(t)
	out, err := runRoot(t, app, "list-available", "--endpoints-dir", dir, "-o", "json")
	if err != nil {
		t.Fatalf("list-available failed: %v", err)
	}
	if !strings.Contains(out, "a-connector") || !strings.Contains(out, "b") {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestExecute_ListRegistered verifies registry enumeration through the CLI.
func TestExecute_ListRegistered(t *testing.T) {
	server := newRegistryServer(t, `[{"id":"ep-1","name":"a","model":"m","connector_type":"c"}]`)

	app := newTestApp(t)
	out, err := runRoot(t, app, "list-registered", "--registry", server.URL, "-o", "json")
	if err != nil {
		t.Fatalf("list-registered failed: %v", err)
	}
	if !strings.Contains(out, `"name": "a"`) {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestExecute_Version verifies the version command.
func TestExecute_Version(t *testing.T) {
	app := newTestApp(t)

	out, err := runRoot(t, app, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "endpointctl test") {
		t.Errorf("unexpected output: %q", out)
	}
}
