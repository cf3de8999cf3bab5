package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleYesLiteral                       = "yes"
	toggleNoLiteral                        = "no"
	toggleOnLiteral                        = "on"
	toggleOffLiteral                       = "off"
	toggleOneLiteral                       = "1"
	toggleZeroLiteral                      = "0"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleFlagTypeDescription              = "bool"
)

// AddToggleFlag registers a boolean flag that accepts yes/no style values in the
// --name=value form. A bare --name sets it to true.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	flagSet.Var(newToggleFlagValue(defaultValue, target), name, formatToggleUsage(usage, defaultValue))

	flag := flagSet.Lookup(name)
	if flag == nil {
		return
	}
	flag.NoOptDefVal = toggleTrueCanonicalValue
}

// ParseToggleValue interprets yes/no, on/off, 1/0, and true/false. Empty text means true.
func ParseToggleValue(rawValue string) (bool, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return true, nil
	}

	switch strings.ToLower(trimmedValue) {
	case toggleTrueCanonicalValue, toggleYesLiteral, toggleOnLiteral, toggleOneLiteral:
		return true, nil
	case toggleFalseCanonicalValue, toggleNoLiteral, toggleOffLiteral, toggleZeroLiteral:
		return false, nil
	default:
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, trimmed)
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := ParseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}

	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeDescription
}
