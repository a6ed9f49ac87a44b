// Package llmrecipes implements the llm-recipes command line.
package llmrecipes

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Collaborators are created once per
// invocation, before any subcommand runs.
func NewRootCommand() *cobra.Command {
	options := &rootOptions{}

	command := &cobra.Command{
		Use:           rootCommandUse,
		Short:         rootCommandShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(options, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			options.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if options.app != nil {
				_ = options.app.logger.Sync()
			}
			return nil
		},
	}

	command.PersistentFlags().StringVar(&options.configPath, configFlagName, "", configFlagUsage)
	command.PersistentFlags().StringVar(&options.storageDirectory, storageDirFlagName, "", storageDirFlagUsage)
	command.PersistentFlags().StringVar(&options.logLevel, logLevelFlagName, "", logLevelFlagUsage)

	command.AddCommand(
		newGenerateCommand(options),
		newChefsCommand(options),
		newKeyCommand(options),
		newSettingsCommand(options),
		newHistoryCommand(options),
		newExportCommand(options),
	)
	return command
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
