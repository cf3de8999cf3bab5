// Package flags provides helpers for binding the shared report flags to Cobra commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix   = "<"
	choicePlaceholderSuffix   = ">"
	choiceSeparatorLiteral    = "|"
	choiceUsageEmptyTemplate  = "`%s`"
	choiceUsageFullTemplate   = "`%s` %s"
	choiceParseErrorTemplate  = "invalid value %q (expected one of %s)"
	choiceListSeparator       = ", "
	choiceFlagTypeDescription = "string"
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// AddChoiceFlag registers a string flag restricted to choices. Values are matched
// case-insensitively and stored lower-cased in target.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}
	choiceValue := newChoiceFlagValue(defaultChoice, choices, target)
	flagSet.Var(choiceValue, name, FormatChoiceUsage(defaultChoice, choices, description))
}

type choiceFlagValue struct {
	currentValue   string
	allowedChoices []string
	target         *string
}

func newChoiceFlagValue(defaultChoice string, choices []string, target *string) *choiceFlagValue {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	if target != nil {
		*target = normalizedDefault
	}
	allowedChoices := make([]string, 0, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) > 0 {
			allowedChoices = append(allowedChoices, normalizedChoice)
		}
	}
	return &choiceFlagValue{currentValue: normalizedDefault, allowedChoices: allowedChoices, target: target}
}

func (value *choiceFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for _, allowedChoice := range value.allowedChoices {
		if normalizedValue != allowedChoice {
			continue
		}
		value.currentValue = normalizedValue
		if value.target != nil {
			*value.target = normalizedValue
		}
		return nil
	}
	return fmt.Errorf(choiceParseErrorTemplate, rawValue, strings.Join(value.allowedChoices, choiceListSeparator))
}

func (value *choiceFlagValue) String() string {
	if value == nil {
		return ""
	}
	return value.currentValue
}

func (value *choiceFlagValue) Type() string {
	return choiceFlagTypeDescription
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	highlightedChoices := highlightDefaultChoice(defaultChoice, choices)
	return choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		displayValue := trimmedChoice
		if normalizedChoice == normalizedDefault && len(normalizedChoice) > 0 {
			displayValue = strings.ToUpper(trimmedChoice)
		}

		highlighted = append(highlighted, displayValue)
		seen[normalizedChoice] = struct{}{}
	}

	return highlighted
}
