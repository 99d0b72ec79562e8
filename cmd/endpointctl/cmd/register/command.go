// Package register provides the commands that register LLM endpoints with
// the registry backend, either from a named config file or from inline JSON.
package register

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/endpointctl/pkg/endpoints"
	"github.com/agentstation/endpointctl/pkg/logging"
	"github.com/agentstation/endpointctl/pkg/registry"
)

// AppContext defines the interface the register commands need from the app.
type AppContext interface {
	Registrar() (*registry.Registrar, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the register command.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "register <endpoint-name>",
		Short: "Register an endpoint from its config file",
		Long: `Register loads the named endpoint's configuration from the endpoints
directory (<name>.json or <name>-connector.json), validates it, and
registers it with the registry backend. Registration is skipped when an
endpoint with the same name or id already exists.`,
		Example: `  endpointctl register openai-gpt4
  endpointctl register claude2 --registry http://localhost:5000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			registrar, err := app.Registrar()
			if err != nil {
				return err
			}

			msg, err := registrar.RegisterByName(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// NewJSONCommand creates the register-json command.
func NewJSONCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "register-json <json-config>",
		Short: "Register an endpoint from an inline JSON config",
		Long: `Register-json parses an endpoint configuration from its single JSON
argument, validates it, and registers it with the registry backend.
Registration is skipped when an endpoint with the same name or id
already exists.`,
		Example: `  endpointctl register-json '{"name":"custom","connector_type":"openai-connector","model":"gpt-4"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			cfg, err := endpoints.ParseConfig([]byte(args[0]))
			if err != nil {
				return err
			}

			registrar, err := app.Registrar()
			if err != nil {
				return err
			}

			msg, err := registrar.Register(ctx, cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
