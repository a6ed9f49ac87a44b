package llmrecipes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/llm-recipes/internal/export"
	"github.com/temirov/llm-recipes/internal/history"
)

func newExportCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   exportCommandUse,
		Short: exportCommandShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := root.app.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			entry, err := history.Find(cmd.Context(), store, args[0])
			if err != nil {
				return fmt.Errorf(historyLookupErrorFormat, args[0], err)
			}
			if err := export.Write(root.app.filesystem, args[1], entry.Recipe); err != nil {
				return fmt.Errorf(exportRecipeErrorFormat, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to %s\n", entry.Title, args[1])
			return err
		},
	}
}
