// Package check provides the command that reports whether an endpoint is
// registered with the backend.
package check

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/endpointctl/pkg/logging"
	"github.com/agentstation/endpointctl/pkg/registry"
)

// AppContext defines the interface the check command needs from the app.
type AppContext interface {
	Registrar() (*registry.Registrar, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the check command.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <endpoint-name>",
		Short: "Check whether an endpoint is registered",
		Long: `Check reports whether an endpoint with the given name or id exists in
the registry. The match is made against both the name and the id of
every registered endpoint.`,
		Example: `  endpointctl check openai-gpt4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			registrar, err := app.Registrar()
			if err != nil {
				return err
			}

			exists, err := registrar.Exists(ctx, args[0])
			if err != nil {
				return err
			}

			if exists {
				fmt.Fprintf(cmd.OutOrStdout(), "Endpoint '%s' exists in registry\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Endpoint '%s' does not exist in registry\n", args[0])
			}
			return nil
		},
	}
}
