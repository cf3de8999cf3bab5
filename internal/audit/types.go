package audit

import (
	"fmt"
	"strings"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/configdoc"
)

const (
	severityErrorStringConstant       = "error"
	severityWarningStringConstant     = "warning"
	severityWarningAliasConstant      = "warn"
	severityInfoStringConstant        = "info"
	severityPassStringConstant        = "pass"
	severityPassAliasConstant         = "ok"
	severityErrorTagConstant          = "[ERROR]"
	severityWarningTagConstant        = "[WARN]"
	severityInfoTagConstant           = "[INFO]"
	severityPassTagConstant           = "[OK]"
	unsupportedSeverityTemplateString = "unsupported severity %q (expected error, warning, info, or pass)"
	exitCodeSuccessConstant           = 0
	exitCodeFailureConstant           = 1
	silencedMessageTemplateConstant   = "%s (silenced by severity override)"
)

// Severity classifies a Finding. Only SeverityError affects the exit code.
type Severity string

// Supported severities.
const (
	SeverityError   Severity = Severity(severityErrorStringConstant)
	SeverityWarning Severity = Severity(severityWarningStringConstant)
	SeverityInfo    Severity = Severity(severityInfoStringConstant)
	SeverityPass    Severity = Severity(severityPassStringConstant)
)

// ParseSeverity converts user-supplied text into a Severity. "warn" and "ok" are accepted aliases.
func ParseSeverity(text string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case severityErrorStringConstant:
		return SeverityError, nil
	case severityWarningStringConstant, severityWarningAliasConstant:
		return SeverityWarning, nil
	case severityInfoStringConstant:
		return SeverityInfo, nil
	case severityPassStringConstant, severityPassAliasConstant:
		return SeverityPass, nil
	default:
		return "", fmt.Errorf(unsupportedSeverityTemplateString, text)
	}
}

// Tag returns the bracketed report prefix for the severity.
func (severity Severity) Tag() string {
	switch severity {
	case SeverityError:
		return severityErrorTagConstant
	case SeverityWarning:
		return severityWarningTagConstant
	case SeverityInfo:
		return severityInfoTagConstant
	default:
		return severityPassTagConstant
	}
}

// ValueReader extracts the value a check inspects. Absent keys yield an absent Value.
type ValueReader func(document *configdoc.Document) configdoc.Value

// ValuePredicate decides whether a value passes. Predicates must be pure.
type ValuePredicate func(value configdoc.Value) bool

// CheckDefinition is one row of the static check table.
type CheckDefinition struct {
	Identifier       string
	Category         string
	Read             ValueReader
	Predicate        ValuePredicate
	SeverityIfFailed Severity
	PassMessage      string
	FailMessage      string
}

// Evaluate applies the check to the document and returns its single Finding.
func (definition CheckDefinition) Evaluate(document *configdoc.Document) Finding {
	finding := Finding{
		CheckIdentifier: definition.Identifier,
		Category:        definition.Category,
	}
	if definition.Predicate(definition.Read(document)) {
		finding.Severity = SeverityPass
		finding.Message = definition.PassMessage
		return finding
	}
	finding.Severity = definition.SeverityIfFailed
	finding.Message = definition.FailMessage
	if definition.SeverityIfFailed == SeverityPass {
		finding.Message = fmt.Sprintf(silencedMessageTemplateConstant, definition.FailMessage)
	}
	return finding
}

// Finding is the outcome of evaluating one check.
type Finding struct {
	CheckIdentifier string   `yaml:"check"`
	Category        string   `yaml:"category"`
	Severity        Severity `yaml:"severity"`
	Message         string   `yaml:"message"`
}

// ReportCounts holds the per-severity totals of a Report.
type ReportCounts struct {
	Errors   int `yaml:"errors"`
	Warnings int `yaml:"warnings"`
	Infos    int `yaml:"infos"`
	Passed   int `yaml:"passed"`
}

// Report aggregates the findings of one audit run.
type Report struct {
	SourcePath string       `yaml:"source"`
	Findings   []Finding    `yaml:"findings"`
	Counts     ReportCounts `yaml:"counts"`
}

func (report *Report) record(finding Finding) {
	report.Findings = append(report.Findings, finding)
	switch finding.Severity {
	case SeverityError:
		report.Counts.Errors++
	case SeverityWarning:
		report.Counts.Warnings++
	case SeverityInfo:
		report.Counts.Infos++
	default:
		report.Counts.Passed++
	}
}

// HasErrors reports whether any finding carries SeverityError.
func (report Report) HasErrors() bool {
	return report.Counts.Errors > 0
}

// ExitCode returns 1 when any finding is an error and 0 otherwise, regardless of warnings and infos.
func (report Report) ExitCode() int {
	if report.HasErrors() {
		return exitCodeFailureConstant
	}
	return exitCodeSuccessConstant
}
