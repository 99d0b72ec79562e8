package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/endpointctl/cmd/endpointctl/cmd/check"
	"github.com/agentstation/endpointctl/cmd/endpointctl/cmd/list"
	"github.com/agentstation/endpointctl/cmd/endpointctl/cmd/register"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(register.NewCommand(a))
	rootCmd.AddCommand(register.NewJSONCommand(a))
	rootCmd.AddCommand(list.NewAvailableCommand(a))
	rootCmd.AddCommand(list.NewRegisteredCommand(a))
	rootCmd.AddCommand(check.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "endpointctl %s\n", a.version)
			fmt.Fprintf(out, "  commit:   %s\n", a.commit)
			fmt.Fprintf(out, "  built:    %s\n", a.date)
			fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
			return nil
		},
	}
}
