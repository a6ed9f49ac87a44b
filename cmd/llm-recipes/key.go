package llmrecipes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newKeyCommand(root *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   keyCommandUse,
		Short: keyCommandShort,
	}

	var keyValue string
	setCommand := &cobra.Command{
		Use:   keySetCommandUse,
		Short: keySetCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := strings.TrimSpace(keyValue)
			if secret == "" {
				read, err := readFirstLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf(readKeyErrorFormat, err)
				}
				secret = read
			}
			if secret == "" {
				return errors.New(missingStoredKeyMessage)
			}
			if err := root.app.secrets.Set(secret); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
			return err
		},
	}
	setCommand.Flags().StringVar(&keyValue, valueFlagName, "", valueFlagUsage)

	statusCommand := &cobra.Command{
		Use:   keyStatusCommandUse,
		Short: keyStatusCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := "API key: not configured"
			if root.app.secrets.Has() {
				status = "API key: configured"
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	}

	deleteCommand := &cobra.Command{
		Use:   keyDeleteCommandUse,
		Short: keyDeleteCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.app.secrets.Delete(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key deleted.")
			return err
		},
	}

	command.AddCommand(setCommand, statusCommand, deleteCommand)
	return command
}

func readFirstLine(input io.Reader) (string, error) {
	scanner := bufio.NewScanner(input)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", scanner.Err()
}
