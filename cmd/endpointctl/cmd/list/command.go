// Package list provides the commands that enumerate endpoint configurations:
// the configs available on disk and the endpoints registered with the
// backend.
package list

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/endpointctl/internal/cmd/output"
	"github.com/agentstation/endpointctl/pkg/endpoints"
	"github.com/agentstation/endpointctl/pkg/logging"
	"github.com/agentstation/endpointctl/pkg/registry"
)

// AppContext defines the interface the list commands need from the app.
type AppContext interface {
	Registrar() (*registry.Registrar, error)
	Store() *endpoints.Store
	Logger() *zerolog.Logger
	Format() output.Format
}

// NewAvailableCommand creates the list-available command.
func NewAvailableCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-available",
		Short: "List endpoint configs available on disk",
		Long: `List-available enumerates the endpoint configuration files in the
endpoints directory by stem, sorted alphabetically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stems := app.Store().Available()

			formatter := output.NewFormatter(app.Format())
			data := stemsToOutput(app.Format(), stems)
			return formatter.Format(cmd.OutOrStdout(), data)
		},
	}
}

// NewRegisteredCommand creates the list-registered command.
func NewRegisteredCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-registered",
		Short: "List endpoints registered with the backend",
		Long: `List-registered fetches all endpoints from the registry backend and
prints a summary of each (name, model, connector type, id).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			registrar, err := app.Registrar()
			if err != nil {
				return err
			}

			summaries, err := registrar.List(ctx)
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(app.Format())
			data := summariesToOutput(app.Format(), summaries)
			return formatter.Format(cmd.OutOrStdout(), data)
		},
	}
}

// stemsToOutput shapes config stems for the chosen format.
func stemsToOutput(format output.Format, stems []string) any {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return stems
	default:
		rows := make([][]string, 0, len(stems))
		for _, stem := range stems {
			rows = append(rows, []string{stem})
		}
		return output.Data{
			Headers: []string{"NAME"},
			Rows:    rows,
		}
	}
}

// summariesToOutput shapes endpoint summaries for the chosen format.
func summariesToOutput(format output.Format, summaries []endpoints.Summary) any {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return summaries
	default:
		rows := make([][]string, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, []string{s.Name, s.Model, s.ConnectorType, s.ID})
		}
		return output.Data{
			Headers: []string{"NAME", "MODEL", "CONNECTOR", "ID"},
			Rows:    rows,
		}
	}
}
