package llmrecipes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	invalidBooleanErrorFormat = "invalid boolean value %q (use yes/no, on/off, true/false or 1/0)"
	boolChoiceTypeName        = "bool"
	boolChoiceImplicitValue   = "true"
	boolChoiceDefaultValue    = "false"
)

// boolChoiceValue is a pflag.Value accepting the usual spellings of yes and
// no, so "--seasonal", "--seasonal=on" and "--seasonal=no" all work.
type boolChoiceValue struct {
	target *bool
}

var _ pflag.Value = (*boolChoiceValue)(nil)

func newBoolChoiceValue(target *bool) *boolChoiceValue {
	return &boolChoiceValue{target: target}
}

func (value *boolChoiceValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return strconv.FormatBool(*value.target)
}

func (value *boolChoiceValue) Set(input string) error {
	boolValue, ok := parseBoolChoice(input)
	if !ok {
		return fmt.Errorf(invalidBooleanErrorFormat, input)
	}
	*value.target = boolValue
	return nil
}

func (value *boolChoiceValue) Type() string {
	return boolChoiceTypeName
}

// registerBoolChoiceFlag adds a boolean flag that may be given bare.
func registerBoolChoiceFlag(command *cobra.Command, target *bool, name string, usage string) {
	command.Flags().Var(newBoolChoiceValue(target), name, usage)
	if flag := command.Flags().Lookup(name); flag != nil {
		flag.NoOptDefVal = boolChoiceImplicitValue
		flag.DefValue = boolChoiceDefaultValue
	}
}

func parseBoolChoice(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	switch normalized {
	case "true", "t", "1", "yes", "y", "on":
		return true, true
	case "false", "f", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
