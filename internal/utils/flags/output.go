package flags

import "github.com/spf13/cobra"

const (
	// FormatFlagName selects the report encoding.
	FormatFlagName = "format"
	// FormatFlagUsage describes the report encoding flag.
	FormatFlagUsage = "Report output format"
	// ColorFlagName toggles ANSI colors in text reports.
	ColorFlagName = "color"
	// ColorFlagUsage describes the color toggle.
	ColorFlagUsage = "Colorize severity tags in text reports"
)

// OutputFlagValues stores the values bound by BindOutputFlags.
type OutputFlagValues struct {
	Format string
	Color  bool
}

// BindOutputFlags attaches --format and --color to the command's local flag set.
func BindOutputFlags(command *cobra.Command, defaults OutputFlagValues, formatChoices []string) *OutputFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if flagSet.Lookup(FormatFlagName) == nil {
		AddChoiceFlag(flagSet, &values.Format, FormatFlagName, defaults.Format, formatChoices, FormatFlagUsage)
	}
	if flagSet.Lookup(ColorFlagName) == nil {
		AddToggleFlag(flagSet, &values.Color, ColorFlagName, defaults.Color, ColorFlagUsage)
	}

	return &values
}
