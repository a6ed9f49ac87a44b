package llmrecipes

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/llm-recipes/internal/settings"
)

func newSettingsCommand(root *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   settingsCommandUse,
		Short: settingsCommandShort,
	}

	getCommand := &cobra.Command{
		Use:   settingsGetCommandUse,
		Short: settingsGetCommandShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, found := root.app.settings.Get(args[0])
			if !found {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), dashPlaceholder)
				return err
			}
			return writeJSON(cmd.OutOrStdout(), value)
		},
	}

	setCommand := &cobra.Command{
		Use:   settingsSetCommandUse,
		Short: settingsSetCommandShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			value := parseSettingValue(args[1])
			if strings.EqualFold(key, settings.KeyModel) {
				warnUnsupportedModel(root.app.logger, value)
			}
			if err := root.app.settings.Set(key, value); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s updated.\n", key)
			return err
		},
	}

	listCommand := &cobra.Command{
		Use:   settingsListCommandUse,
		Short: settingsListCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), root.app.settings.All())
		},
	}

	command.AddCommand(getCommand, setCommand, listCommand)
	return command
}

// parseSettingValue decodes JSON scalars and documents, keeping anything
// else as a plain string.
func parseSettingValue(raw string) any {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}
	return raw
}

func warnUnsupportedModel(logger *zap.Logger, value any) {
	model, isString := value.(string)
	if !isString {
		logger.Warn("model setting should be a string", zap.Any("value", value))
		return
	}
	for _, supported := range supportedModels {
		if model == supported {
			return
		}
	}
	logger.Warn("model is not in the supported list", zap.String("model", model), zap.Strings("supported", supportedModels))
}

func writeJSON(output io.Writer, value any) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf(encodeJSONErrorFormat, err)
	}
	return nil
}
