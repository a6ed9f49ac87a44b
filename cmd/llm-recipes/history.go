package llmrecipes

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/temirov/llm-recipes/internal/export"
	"github.com/temirov/llm-recipes/internal/history"
	"github.com/temirov/llm-recipes/internal/settings"
)

func newHistoryCommand(root *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   historyCommandUse,
		Short: historyCommandShort,
	}

	listCommand := &cobra.Command{
		Use:   historyListCommandUse,
		Short: historyListCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := root.app.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			return listHistory(cmd.OutOrStdout(), entries)
		},
	}

	var render, asHTML bool
	showCommand := &cobra.Command{
		Use:   historyShowCommandUse,
		Short: historyShowCommandShort,
		Args:  cobra.ExactArgs(1),
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
			format := outputFormatText
			switch {
			case asHTML:
				format = outputFormatHTML
			case render:
				format = outputFormatRendered
			}
			theme := root.app.settings.GetString(settings.KeyTheme, export.StyleDark)
			return printResult(cmd.OutOrStdout(), entry.Recipe, format, theme)
		},
	}
	showCommand.Flags().BoolVar(&render, renderFlagName, false, renderFlagUsage)
	showCommand.Flags().BoolVar(&asHTML, htmlFlagName, false, htmlFlagUsage)

	clearCommand := &cobra.Command{
		Use:   historyClearCommandUse,
		Short: historyClearCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := root.app.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return err
		},
	}

	command.AddCommand(listCommand, showCommand, clearCommand)
	return command
}

func listHistory(output io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(output, "No saved recipes.")
		return err
	}
	for index := len(entries) - 1; index >= 0; index-- {
		entry := entries[index]
		if _, err := fmt.Fprintf(output, "%s  %s  %-5s  %s\n",
			shortID(entry.Recipe.ID),
			entry.Timestamp.Local().Format(historyTimestampLayout),
			entry.Recipe.ComplexityScore,
			entry.Title,
		); err != nil {
			return err
		}
	}
	return nil
}

func shortID(identifier string) string {
	if len(identifier) <= shortIDLength {
		return identifier
	}
	return identifier[:shortIDLength]
}
