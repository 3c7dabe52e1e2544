package commands

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/spf13/cobra"
)

type tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// NewToolsCommand creates the command that prints the copilot action
// registry as the recognizer sees it.
func NewToolsCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the copilot actions and their parameter schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := copilotbus.Tools()

			tools := make([]tool, len(registry))
			for i, t := range registry {
				tools[i] = tool{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				}
			}

			data, err := json.MarshalIndent(tools, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
