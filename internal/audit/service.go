package audit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/configdoc"
)

const (
	unknownOverrideTemplateConstant  = "severity override references unknown check %q"
	logMessageCheckEvaluatedConstant = "check evaluated"
	logMessageAuditCompletedConstant = "configuration audit completed"
	logMessageAuditAbortedConstant   = "configuration audit aborted"
	logFieldCheckIdentifierConstant  = "check"
	logFieldSeverityConstant         = "severity"
	logFieldSourcePathConstant       = "source_path"
	logFieldErrorCountConstant       = "errors"
	logFieldWarningCountConstant     = "warnings"
	logFieldInfoCountConstant        = "infos"
	logFieldPassCountConstant        = "passed"
	logFieldExitCodeConstant         = "exit_code"
)

// Auditor evaluates an ordered check table against documents.
type Auditor struct {
	definitions []CheckDefinition
	logger      *zap.Logger
}

// NewAuditor copies the definitions so later changes by the caller do not affect evaluation.
func NewAuditor(definitions []CheckDefinition, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	duplicatedDefinitions := make([]CheckDefinition, len(definitions))
	copy(duplicatedDefinitions, definitions)
	return &Auditor{definitions: duplicatedDefinitions, logger: logger}
}

// Evaluate produces one Finding per definition, in declaration order.
func (auditor *Auditor) Evaluate(document *configdoc.Document) Report {
	report := Report{
		SourcePath: document.SourcePath(),
		Findings:   make([]Finding, 0, len(auditor.definitions)),
	}
	for _, definition := range auditor.definitions {
		finding := definition.Evaluate(document)
		auditor.logger.Debug(
			logMessageCheckEvaluatedConstant,
			zap.String(logFieldCheckIdentifierConstant, finding.CheckIdentifier),
			zap.String(logFieldSeverityConstant, string(finding.Severity)),
		)
		report.record(finding)
	}
	return report
}

// ApplySeverityOverrides returns a copy of definitions with SeverityIfFailed replaced
// for every identifier in overrides. Unknown identifiers are rejected. A pass
// override silences the check: a failure is reported as an [OK] line.
func ApplySeverityOverrides(definitions []CheckDefinition, overrides map[string]Severity) ([]CheckDefinition, error) {
	overriddenDefinitions := make([]CheckDefinition, len(definitions))
	copy(overriddenDefinitions, definitions)

	definitionIndexes := make(map[string]int, len(definitions))
	for definitionIndex, definition := range overriddenDefinitions {
		definitionIndexes[definition.Identifier] = definitionIndex
	}

	for checkIdentifier, severity := range overrides {
		definitionIndex, known := definitionIndexes[checkIdentifier]
		if !known {
			return nil, fmt.Errorf(unknownOverrideTemplateConstant, checkIdentifier)
		}
		overriddenDefinitions[definitionIndex].SeverityIfFailed = severity
	}

	return overriddenDefinitions, nil
}

// DocumentLoader loads a configuration document from a path.
type DocumentLoader func(filePath string) (*configdoc.Document, error)

// Service runs complete audits: load, parse, evaluate, summarize.
type Service struct {
	loader  DocumentLoader
	auditor *Auditor
	logger  *zap.Logger
}

// NewService constructs a Service. A nil loader defaults to configdoc.Load.
func NewService(loader DocumentLoader, auditor *Auditor, logger *zap.Logger) *Service {
	if loader == nil {
		loader = configdoc.Load
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: loader, auditor: auditor, logger: logger}
}

// RunAudit audits the configuration at filePath. Fatal conditions (missing file,
// parse failure) return an error with exit code 1 and no findings.
func (service *Service) RunAudit(filePath string) (Report, int, error) {
	document, loadError := service.loader(filePath)
	if loadError != nil {
		service.logger.Warn(logMessageAuditAbortedConstant, zap.String(logFieldSourcePathConstant, filePath), zap.Error(loadError))
		return Report{}, exitCodeFailureConstant, loadError
	}

	report := service.auditor.Evaluate(document)
	exitCode := report.ExitCode()

	service.logger.Info(
		logMessageAuditCompletedConstant,
		zap.String(logFieldSourcePathConstant, report.SourcePath),
		zap.Int(logFieldErrorCountConstant, report.Counts.Errors),
		zap.Int(logFieldWarningCountConstant, report.Counts.Warnings),
		zap.Int(logFieldInfoCountConstant, report.Counts.Infos),
		zap.Int(logFieldPassCountConstant, report.Counts.Passed),
		zap.Int(logFieldExitCodeConstant, exitCode),
	)

	return report, exitCode, nil
}
