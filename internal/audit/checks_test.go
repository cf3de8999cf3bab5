package audit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/audit"
)

func findingFor(testInstance *testing.T, report audit.Report, checkIdentifier string) audit.Finding {
	testInstance.Helper()
	for _, finding := range report.Findings {
		if finding.CheckIdentifier == checkIdentifier {
			return finding
		}
	}
	require.FailNow(testInstance, "finding not reported", checkIdentifier)
	return audit.Finding{}
}

func TestDefaultCheckDefinitionsEvaluateOptions(testInstance *testing.T) {
	testCases := []struct {
		name             string
		content          string
		checkIdentifier  string
		expectedSeverity audit.Severity
	}{
		{name: "compiler_options_array", content: `{"compilerOptions": []}`, checkIdentifier: audit.CheckCompilerOptions, expectedSeverity: audit.SeverityError},
		{name: "compiler_options_object", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckCompilerOptions, expectedSeverity: audit.SeverityPass},
		{name: "input_files_from_references", content: `{"references": []}`, checkIdentifier: audit.CheckInputFiles, expectedSeverity: audit.SeverityPass},
		{name: "input_files_missing", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckInputFiles, expectedSeverity: audit.SeverityWarning},
		{name: "extends_present", content: `{"extends": "./base.json"}`, checkIdentifier: audit.CheckExtends, expectedSeverity: audit.SeverityInfo},
		{name: "strict_string_is_not_true", content: `{"compilerOptions": {"strict": "true"}}`, checkIdentifier: audit.CheckStrict, expectedSeverity: audit.SeverityError},
		{name: "strict_false", content: `{"compilerOptions": {"strict": false}}`, checkIdentifier: audit.CheckStrict, expectedSeverity: audit.SeverityError},
		{name: "strict_null_checks_disabled_under_strict", content: `{"compilerOptions": {"strict": true, "strictNullChecks": false}}`, checkIdentifier: audit.CheckStrictNullChecksOverride, expectedSeverity: audit.SeverityWarning},
		{name: "strict_null_checks_disabled_without_strict", content: `{"compilerOptions": {"strictNullChecks": false}}`, checkIdentifier: audit.CheckStrictNullChecksOverride, expectedSeverity: audit.SeverityPass},
		{name: "no_implicit_any_disabled_under_strict", content: `{"compilerOptions": {"strict": true, "noImplicitAny": false}}`, checkIdentifier: audit.CheckNoImplicitAnyOverride, expectedSeverity: audit.SeverityWarning},
		{name: "unchecked_indexed_access_missing", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckNoUncheckedIndexedAccess, expectedSeverity: audit.SeverityWarning},
		{name: "exact_optional_missing", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckExactOptionalPropertyTypes, expectedSeverity: audit.SeverityInfo},
		{name: "nodenext_with_bundler", content: `{"compilerOptions": {"module": "NodeNext", "moduleResolution": "Bundler"}}`, checkIdentifier: audit.CheckModuleResolutionPairing, expectedSeverity: audit.SeverityError},
		{name: "node16_with_nodenext", content: `{"compilerOptions": {"module": "node16", "moduleResolution": "nodenext"}}`, checkIdentifier: audit.CheckModuleResolutionPairing, expectedSeverity: audit.SeverityPass},
		{name: "nodenext_without_resolution", content: `{"compilerOptions": {"module": "nodenext"}}`, checkIdentifier: audit.CheckModuleResolutionPairing, expectedSeverity: audit.SeverityPass},
		{name: "esnext_with_bundler", content: `{"compilerOptions": {"module": "esnext", "moduleResolution": "bundler"}}`, checkIdentifier: audit.CheckModuleResolutionPairing, expectedSeverity: audit.SeverityPass},
		{name: "legacy_node_resolution", content: `{"compilerOptions": {"moduleResolution": "Node"}}`, checkIdentifier: audit.CheckLegacyModuleResolution, expectedSeverity: audit.SeverityWarning},
		{name: "interop_through_verbatim_syntax", content: `{"compilerOptions": {"verbatimModuleSyntax": true}}`, checkIdentifier: audit.CheckModuleInterop, expectedSeverity: audit.SeverityPass},
		{name: "interop_missing", content: `{"compilerOptions": {"esModuleInterop": false}}`, checkIdentifier: audit.CheckModuleInterop, expectedSeverity: audit.SeverityWarning},
		{name: "bundler_without_isolated_modules", content: `{"compilerOptions": {"moduleResolution": "bundler"}}`, checkIdentifier: audit.CheckIsolatedModules, expectedSeverity: audit.SeverityWarning},
		{name: "bundler_with_isolated_modules", content: `{"compilerOptions": {"moduleResolution": "bundler", "isolatedModules": true}}`, checkIdentifier: audit.CheckIsolatedModules, expectedSeverity: audit.SeverityPass},
		{name: "bundler_with_verbatim_module_syntax", content: `{"compilerOptions": {"moduleResolution": "bundler", "verbatimModuleSyntax": true}}`, checkIdentifier: audit.CheckIsolatedModules, expectedSeverity: audit.SeverityPass},
		{name: "target_es5", content: `{"compilerOptions": {"target": "ES5"}}`, checkIdentifier: audit.CheckTarget, expectedSeverity: audit.SeverityWarning},
		{name: "target_missing", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckTarget, expectedSeverity: audit.SeverityPass},
		{name: "declaration_with_no_emit", content: `{"compilerOptions": {"declaration": true, "noEmit": true}}`, checkIdentifier: audit.CheckDeclarationWithoutEmit, expectedSeverity: audit.SeverityError},
		{name: "declaration_only_emit", content: `{"compilerOptions": {"declaration": true, "noEmit": true, "emitDeclarationOnly": true}}`, checkIdentifier: audit.CheckDeclarationWithoutEmit, expectedSeverity: audit.SeverityPass},
		{name: "no_emit_is_explicit_destination", content: `{"compilerOptions": {"noEmit": true}}`, checkIdentifier: audit.CheckOutDir, expectedSeverity: audit.SeverityPass},
		{name: "no_emit_false_still_writes_next_to_sources", content: `{"compilerOptions": {"noEmit": false}}`, checkIdentifier: audit.CheckOutDir, expectedSeverity: audit.SeverityInfo},
		{name: "empty_out_dir", content: `{"compilerOptions": {"outDir": ""}}`, checkIdentifier: audit.CheckOutDir, expectedSeverity: audit.SeverityInfo},
		{name: "out_file_is_explicit_destination", content: `{"compilerOptions": {"outFile": "dist/bundle.js"}}`, checkIdentifier: audit.CheckOutDir, expectedSeverity: audit.SeverityPass},
		{name: "out_dir_with_no_emit_false", content: `{"compilerOptions": {"outDir": "dist", "noEmit": false}}`, checkIdentifier: audit.CheckOutDir, expectedSeverity: audit.SeverityPass},
		{name: "force_casing_disabled", content: `{"compilerOptions": {"forceConsistentCasingInFileNames": false}}`, checkIdentifier: audit.CheckForceConsistentCasing, expectedSeverity: audit.SeverityWarning},
		{name: "force_casing_absent", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckForceConsistentCasing, expectedSeverity: audit.SeverityPass},
		{name: "skip_lib_check_missing", content: `{"compilerOptions": {}}`, checkIdentifier: audit.CheckSkipLibCheck, expectedSeverity: audit.SeverityInfo},
	}

	auditor := audit.NewAuditor(audit.DefaultCheckDefinitions(), nil)

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			report := auditor.Evaluate(parseAuditDocument(subTest, testCase.content))
			finding := findingFor(subTest, report, testCase.checkIdentifier)
			require.Equal(subTest, testCase.expectedSeverity, finding.Severity)
			require.NotEmpty(subTest, finding.Message)
		})
	}
}

func TestDefaultCheckDefinitionsAreWellFormed(testInstance *testing.T) {
	definitions := audit.DefaultCheckDefinitions()
	seenIdentifiers := make(map[string]struct{}, len(definitions))

	for _, definition := range definitions {
		require.NotEmpty(testInstance, definition.Identifier)
		require.NotEmpty(testInstance, definition.Category)
		require.NotNil(testInstance, definition.Read)
		require.NotNil(testInstance, definition.Predicate)
		require.NotEqual(testInstance, audit.SeverityPass, definition.SeverityIfFailed)
		require.NotEmpty(testInstance, definition.PassMessage)
		require.NotEmpty(testInstance, definition.FailMessage)

		_, duplicate := seenIdentifiers[definition.Identifier]
		require.False(testInstance, duplicate, definition.Identifier)
		seenIdentifiers[definition.Identifier] = struct{}{}
	}
}
