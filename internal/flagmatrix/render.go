package flagmatrix

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/audit"
)

const (
	reportHeadingTemplateConstant   = "strict flag matrix: %s (compiler: %s)\n"
	outcomesHeadingConstant         = "\nFlags\n"
	measuredLineTemplateConstant    = "  %s %s: %d diagnostic(s)\n"
	failedLineTemplateConstant      = "  %s %s: tooling error: %v\n"
	orderHeadingConstant            = "\nSuggested enablement order\n"
	orderMeasuredLineTemplate       = "  %d. %s (%d)\n"
	orderFailedLineTemplate         = "  %d. %s (not measured)\n"
	summaryLineTemplateConstant     = "\nSummary: %d clean, %d with diagnostics, %d tooling error(s)\n"
	yamlIndentConstant              = 2
	unsupportedFormatTemplateString = "unsupported report format %q"
)

// Renderer writes a flag matrix Report to an output stream.
type Renderer interface {
	Render(writer io.Writer, report Report) error
}

// NewRenderer returns the renderer for the requested format.
func NewRenderer(format audit.OutputFormat, colorEnabled bool) (Renderer, error) {
	switch format {
	case audit.OutputFormatText:
		return TextRenderer{painter: audit.NewSeverityPainter(colorEnabled)}, nil
	case audit.OutputFormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatTemplateString, format)
	}
}

// TextRenderer prints per-flag outcomes in declared order followed by the suggested order.
type TextRenderer struct {
	painter audit.SeverityPainter
}

// Render implements Renderer.
func (renderer TextRenderer) Render(writer io.Writer, report Report) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, reportHeadingTemplateConstant, report.SourcePath, report.Compiler)

	outcomesByFlag := make(map[string]FlagOutcome, len(report.Outcomes))
	cleanCount := 0
	pendingCount := 0
	failedCount := 0

	builder.WriteString(outcomesHeadingConstant)
	for _, outcome := range report.Outcomes {
		outcomesByFlag[outcome.Flag] = outcome
		switch {
		case !outcome.Measured():
			failedCount++
			fmt.Fprintf(&builder, failedLineTemplateConstant, renderer.painter.Paint(audit.SeverityError), outcome.Flag, outcome.ToolingError)
		case outcome.DiagnosticCount == 0:
			cleanCount++
			fmt.Fprintf(&builder, measuredLineTemplateConstant, renderer.painter.Paint(audit.SeverityPass), outcome.Flag, outcome.DiagnosticCount)
		default:
			pendingCount++
			fmt.Fprintf(&builder, measuredLineTemplateConstant, renderer.painter.Paint(audit.SeverityWarning), outcome.Flag, outcome.DiagnosticCount)
		}
	}

	builder.WriteString(orderHeadingConstant)
	for orderIndex, flagName := range report.SuggestedOrder {
		outcome := outcomesByFlag[flagName]
		if !outcome.Measured() {
			fmt.Fprintf(&builder, orderFailedLineTemplate, orderIndex+1, flagName)
			continue
		}
		fmt.Fprintf(&builder, orderMeasuredLineTemplate, orderIndex+1, flagName, outcome.DiagnosticCount)
	}

	fmt.Fprintf(&builder, summaryLineTemplateConstant, cleanCount, pendingCount, failedCount)

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

// YAMLRenderer encodes the Report as a YAML document.
type YAMLRenderer struct{}

type reportDocument struct {
	Source         string            `yaml:"source"`
	Compiler       string            `yaml:"compiler"`
	Flags          []outcomeDocument `yaml:"flags"`
	SuggestedOrder []string          `yaml:"suggested_order"`
}

type outcomeDocument struct {
	Flag         string `yaml:"flag"`
	Diagnostics  *int   `yaml:"diagnostics,omitempty"`
	ToolingError string `yaml:"tooling_error,omitempty"`
}

// Render implements Renderer.
func (YAMLRenderer) Render(writer io.Writer, report Report) error {
	document := reportDocument{
		Source:         report.SourcePath,
		Compiler:       report.Compiler,
		Flags:          make([]outcomeDocument, 0, len(report.Outcomes)),
		SuggestedOrder: report.SuggestedOrder,
	}
	for _, outcome := range report.Outcomes {
		entry := outcomeDocument{Flag: outcome.Flag}
		if outcome.Measured() {
			diagnosticCount := outcome.DiagnosticCount
			entry.Diagnostics = &diagnosticCount
		} else {
			entry.ToolingError = outcome.ToolingError.Error()
		}
		document.Flags = append(document.Flags, entry)
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
