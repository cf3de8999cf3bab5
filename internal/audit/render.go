package audit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	reportHeadingTemplateConstant  = "tsconfig audit: %s\n"
	sectionHeadingTemplateConstant = "\n%s\n"
	findingLineTemplateConstant    = "  %s %s\n"
	summaryLineTemplateConstant    = "\nSummary: %d error(s), %d warning(s), %d info, %d passed\n"
	yamlIndentConstant             = 2
	unsupportedFormatTemplate      = "unsupported report format %q"
)

// OutputFormat selects how a Report is rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(text string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(text))) {
	case OutputFormatText:
		return OutputFormatText, nil
	case OutputFormatYAML:
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplate, text)
	}
}

// SeverityPainter renders bracketed severity tags, optionally colored.
// Color state lives on the painter, never in fatih/color globals.
type SeverityPainter struct {
	palette map[Severity]*color.Color
}

// NewSeverityPainter builds a painter; colorEnabled toggles ANSI escapes.
func NewSeverityPainter(colorEnabled bool) SeverityPainter {
	palette := map[Severity]*color.Color{
		SeverityError:   color.New(color.FgRed, color.Bold),
		SeverityWarning: color.New(color.FgYellow),
		SeverityInfo:    color.New(color.FgCyan),
		SeverityPass:    color.New(color.FgGreen),
	}
	for _, severityColor := range palette {
		if colorEnabled {
			severityColor.EnableColor()
		} else {
			severityColor.DisableColor()
		}
	}
	return SeverityPainter{palette: palette}
}

// Paint returns the tag for severity.
func (painter SeverityPainter) Paint(severity Severity) string {
	return painter.PaintText(severity, severity.Tag())
}

// PaintText colors arbitrary text with the severity's color.
func (painter SeverityPainter) PaintText(severity Severity, text string) string {
	severityColor, known := painter.palette[severity]
	if !known {
		return text
	}
	return severityColor.Sprint(text)
}

// Renderer writes a Report to an output stream.
type Renderer interface {
	Render(writer io.Writer, report Report) error
}

// NewRenderer returns the renderer for the requested format.
func NewRenderer(format OutputFormat, colorEnabled bool) (Renderer, error) {
	switch format {
	case OutputFormatText:
		return TextRenderer{painter: NewSeverityPainter(colorEnabled)}, nil
	case OutputFormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatTemplate, format)
	}
}

// TextRenderer prints the line-oriented report: a heading, findings grouped by
// category in first-seen order, and a summary line.
type TextRenderer struct {
	painter SeverityPainter
}

// Render implements Renderer.
func (renderer TextRenderer) Render(writer io.Writer, report Report) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, reportHeadingTemplateConstant, report.SourcePath)

	categoryOrder, findingsByCategory := groupFindingsByCategory(report.Findings)
	for _, category := range categoryOrder {
		fmt.Fprintf(&builder, sectionHeadingTemplateConstant, category)
		for _, finding := range findingsByCategory[category] {
			fmt.Fprintf(&builder, findingLineTemplateConstant, renderer.painter.Paint(finding.Severity), finding.Message)
		}
	}

	fmt.Fprintf(&builder, summaryLineTemplateConstant, report.Counts.Errors, report.Counts.Warnings, report.Counts.Infos, report.Counts.Passed)

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func groupFindingsByCategory(findings []Finding) ([]string, map[string][]Finding) {
	categoryOrder := make([]string, 0)
	findingsByCategory := make(map[string][]Finding)
	for _, finding := range findings {
		if _, seen := findingsByCategory[finding.Category]; !seen {
			categoryOrder = append(categoryOrder, finding.Category)
		}
		findingsByCategory[finding.Category] = append(findingsByCategory[finding.Category], finding)
	}
	return categoryOrder, findingsByCategory
}

// YAMLRenderer encodes the Report as a YAML document.
type YAMLRenderer struct{}

// Render implements Renderer.
func (YAMLRenderer) Render(writer io.Writer, report Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
