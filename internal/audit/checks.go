package audit

import (
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/configdoc"
)

const (
	compilerOptionsKeyConstant = "compilerOptions"
	compilerOptionPrefix       = compilerOptionsKeyConstant + "."

	categoryStructureConstant  = "Structure"
	categoryStrictnessConstant = "Strictness"
	categoryModulesConstant    = "Modules"
	categoryEmitConstant       = "Emit"
	categoryHygieneConstant    = "Hygiene"
)

// Check identifiers, usable as keys in severity overrides.
const (
	CheckCompilerOptions            = "compiler-options"
	CheckInputFiles                 = "input-files"
	CheckExtends                    = "extends"
	CheckStrict                     = "strict"
	CheckStrictNullChecksOverride   = "strict-null-checks-override"
	CheckNoImplicitAnyOverride      = "no-implicit-any-override"
	CheckNoUncheckedIndexedAccess   = "no-unchecked-indexed-access"
	CheckNoImplicitOverride         = "no-implicit-override"
	CheckExactOptionalPropertyTypes = "exact-optional-property-types"
	CheckNoFallthroughCasesInSwitch = "no-fallthrough-cases-in-switch"
	CheckModuleResolutionPairing    = "module-resolution-pairing"
	CheckLegacyModuleResolution     = "legacy-module-resolution"
	CheckModuleInterop              = "module-interop"
	CheckIsolatedModules            = "isolated-modules"
	CheckTarget                     = "target"
	CheckDeclarationWithoutEmit     = "declaration-without-emit"
	CheckOutDir                     = "out-dir"
	CheckForceConsistentCasing      = "force-consistent-casing"
	CheckSkipLibCheck               = "skip-lib-check"
)

var (
	nodeModuleKinds         = []string{"node16", "nodenext", "node18", "node20"}
	legacyModuleResolutions = []string{"node", "node10", "classic"}
	legacyTargets           = []string{"es3", "es5"}
)

// DefaultCheckDefinitions returns the tsconfig check table in report order.
// Every call returns a fresh slice.
func DefaultCheckDefinitions() []CheckDefinition {
	return []CheckDefinition{
		{
			Identifier:       CheckCompilerOptions,
			Category:         categoryStructureConstant,
			Read:             readPath(compilerOptionsKeyConstant),
			Predicate:        configdoc.Value.IsObject,
			SeverityIfFailed: SeverityError,
			PassMessage:      "compilerOptions is defined",
			FailMessage:      "compilerOptions is missing or not an object; tsc falls back to its defaults for every option",
		},
		{
			Identifier:       CheckInputFiles,
			Category:         categoryStructureConstant,
			Read:             readRoot,
			Predicate:        anyKeyPresent("files", "include", "references"),
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "input files are scoped with files, include, or references",
			FailMessage:      "none of files, include, or references is set; tsc will compile every .ts file under the project directory",
		},
		{
			Identifier:       CheckExtends,
			Category:         categoryStructureConstant,
			Read:             readPath("extends"),
			Predicate:        isAbsent,
			SeverityIfFailed: SeverityInfo,
			PassMessage:      "no base configuration is extended",
			FailMessage:      "extends is set; inherited options are not audited, run the audit on the base configuration too",
		},
		{
			Identifier:       CheckStrict,
			Category:         categoryStrictnessConstant,
			Read:             readCompilerOption("strict"),
			Predicate:        isTrue,
			SeverityIfFailed: SeverityError,
			PassMessage:      "strict is enabled",
			FailMessage:      "strict is not enabled; set \"strict\": true (use the strict-flags command to plan the migration)",
		},
		{
			Identifier:       CheckStrictNullChecksOverride,
			Category:         categoryStrictnessConstant,
			Read:             readRoot,
			Predicate:        strictFamilyNotDisabled("strictNullChecks"),
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "strictNullChecks is not disabled underneath strict",
			FailMessage:      "strict is enabled but strictNullChecks is explicitly false, which removes null safety",
		},
		{
			Identifier:       CheckNoImplicitAnyOverride,
			Category:         categoryStrictnessConstant,
			Read:             readRoot,
			Predicate:        strictFamilyNotDisabled("noImplicitAny"),
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "noImplicitAny is not disabled underneath strict",
			FailMessage:      "strict is enabled but noImplicitAny is explicitly false, which lets untyped parameters through",
		},
		{
			Identifier:       CheckNoUncheckedIndexedAccess,
			Category:         categoryStrictnessConstant,
			Read:             readCompilerOption("noUncheckedIndexedAccess"),
			Predicate:        isTrue,
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "noUncheckedIndexedAccess is enabled",
			FailMessage:      "noUncheckedIndexedAccess is not enabled; indexed reads are typed as always defined",
		},
		{
			Identifier:       CheckNoImplicitOverride,
			Category:         categoryStrictnessConstant,
			Read:             readCompilerOption("noImplicitOverride"),
			Predicate:        isTrue,
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "noImplicitOverride is enabled",
			FailMessage:      "noImplicitOverride is not enabled; overridden members do not require the override keyword",
		},
		{
			Identifier:       CheckExactOptionalPropertyTypes,
			Category:         categoryStrictnessConstant,
			Read:             readCompilerOption("exactOptionalPropertyTypes"),
			Predicate:        isTrue,
			SeverityIfFailed: SeverityInfo,
			PassMessage:      "exactOptionalPropertyTypes is enabled",
			FailMessage:      "consider exactOptionalPropertyTypes to distinguish missing properties from undefined values",
		},
		{
			Identifier:       CheckNoFallthroughCasesInSwitch,
			Category:         categoryStrictnessConstant,
			Read:             readCompilerOption("noFallthroughCasesInSwitch"),
			Predicate:        isTrue,
			SeverityIfFailed: SeverityInfo,
			PassMessage:      "noFallthroughCasesInSwitch is enabled",
			FailMessage:      "consider noFallthroughCasesInSwitch to catch accidental switch fallthrough",
		},
		{
			Identifier:       CheckModuleResolutionPairing,
			Category:         categoryModulesConstant,
			Read:             readRoot,
			Predicate:        moduleResolutionMatchesNodeModule,
			SeverityIfFailed: SeverityError,
			PassMessage:      "module and moduleResolution are compatible",
			FailMessage:      "module is a Node.js mode (node16/nodenext) but moduleResolution differs; tsc rejects this combination",
		},
		{
			Identifier:       CheckLegacyModuleResolution,
			Category:         categoryModulesConstant,
			Read:             readCompilerOption("moduleResolution"),
			Predicate:        notOneOf(legacyModuleResolutions...),
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "moduleResolution is not a legacy mode",
			FailMessage:      "moduleResolution uses a legacy mode (node/node10/classic); prefer bundler, node16, or nodenext",
		},
		{
			Identifier:       CheckModuleInterop,
			Category:         categoryModulesConstant,
			Read:             readRoot,
			Predicate:        anyCompilerOptionTrue("esModuleInterop", "verbatimModuleSyntax"),
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "CommonJS interop is configured",
			FailMessage:      "neither esModuleInterop nor verbatimModuleSyntax is enabled; default imports from CommonJS modules may break at runtime",
		},
		{
			Identifier:       CheckIsolatedModules,
			Category:         categoryModulesConstant,
			Read:             readRoot,
			Predicate:        bundlerResolutionIsolated,
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "isolatedModules is compatible with the module resolution mode",
			FailMessage:      "moduleResolution is bundler but isolatedModules is not enabled; single-file transpilers may miscompile re-exports",
		},
		{
			Identifier:       CheckTarget,
			Category:         categoryEmitConstant,
			Read:             readCompilerOption("target"),
			Predicate:        notOneOf(legacyTargets...),
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "target is ES2015 or newer",
			FailMessage:      "target is ES3/ES5; down-leveling adds helpers and is rarely needed today",
		},
		{
			Identifier:       CheckDeclarationWithoutEmit,
			Category:         categoryEmitConstant,
			Read:             readRoot,
			Predicate:        declarationCompatibleWithEmit,
			SeverityIfFailed: SeverityError,
			PassMessage:      "declaration output is consistent with emit settings",
			FailMessage:      "declaration is enabled together with noEmit; no declaration files will be written (use emitDeclarationOnly instead)",
		},
		{
			Identifier:       CheckOutDir,
			Category:         categoryEmitConstant,
			Read:             readRoot,
			Predicate:        emitDestinationExplicit,
			SeverityIfFailed: SeverityInfo,
			PassMessage:      "emit destination is explicit",
			FailMessage:      "no outDir or outFile is set and noEmit is not true; compiled files are written next to their sources",
		},
		{
			Identifier:       CheckForceConsistentCasing,
			Category:         categoryHygieneConstant,
			Read:             readCompilerOption("forceConsistentCasingInFileNames"),
			Predicate:        isNotFalse,
			SeverityIfFailed: SeverityWarning,
			PassMessage:      "forceConsistentCasingInFileNames is not disabled",
			FailMessage:      "forceConsistentCasingInFileNames is explicitly false; imports may break on case-sensitive file systems",
		},
		{
			Identifier:       CheckSkipLibCheck,
			Category:         categoryHygieneConstant,
			Read:             readCompilerOption("skipLibCheck"),
			Predicate:        isTrue,
			SeverityIfFailed: SeverityInfo,
			PassMessage:      "skipLibCheck is enabled",
			FailMessage:      "consider skipLibCheck to avoid type-checking third-party declaration files on every build",
		},
	}
}

func readRoot(document *configdoc.Document) configdoc.Value {
	return document.Root()
}

func readPath(keyPath string) ValueReader {
	return func(document *configdoc.Document) configdoc.Value {
		return document.Lookup(keyPath)
	}
}

func readCompilerOption(optionName string) ValueReader {
	return readPath(compilerOptionPrefix + optionName)
}

func compilerOption(root configdoc.Value, optionName string) configdoc.Value {
	return root.Lookup(compilerOptionPrefix + optionName)
}

func isTrue(value configdoc.Value) bool {
	return value.IsTrue()
}

func isNotFalse(value configdoc.Value) bool {
	return !value.IsFalse()
}

func isAbsent(value configdoc.Value) bool {
	return !value.Exists()
}

func notOneOf(rejectedValues ...string) ValuePredicate {
	return func(value configdoc.Value) bool {
		return !containsText(rejectedValues, value.NormalizedText())
	}
}

func anyKeyPresent(keys ...string) ValuePredicate {
	return func(root configdoc.Value) bool {
		for _, key := range keys {
			if root.Lookup(key).Exists() {
				return true
			}
		}
		return false
	}
}

func anyCompilerOptionTrue(optionNames ...string) ValuePredicate {
	return func(root configdoc.Value) bool {
		for _, optionName := range optionNames {
			if compilerOption(root, optionName).IsTrue() {
				return true
			}
		}
		return false
	}
}

// strictFamilyNotDisabled fails only when strict is on and the member flag is explicitly false.
func strictFamilyNotDisabled(optionName string) ValuePredicate {
	return func(root configdoc.Value) bool {
		if !compilerOption(root, "strict").IsTrue() {
			return true
		}
		return !compilerOption(root, optionName).IsFalse()
	}
}

func moduleResolutionMatchesNodeModule(root configdoc.Value) bool {
	moduleKind := compilerOption(root, "module").NormalizedText()
	if !containsText(nodeModuleKinds, moduleKind) {
		return true
	}
	resolution := compilerOption(root, "moduleResolution")
	if !resolution.Exists() {
		return true
	}
	resolutionKind := resolution.NormalizedText()
	if moduleKind == "nodenext" {
		return resolutionKind == "nodenext"
	}
	return resolutionKind == "node16" || resolutionKind == "nodenext"
}

func bundlerResolutionIsolated(root configdoc.Value) bool {
	if compilerOption(root, "moduleResolution").NormalizedText() != "bundler" {
		return true
	}
	return compilerOption(root, "isolatedModules").IsTrue() || compilerOption(root, "verbatimModuleSyntax").IsTrue()
}

// emitDestinationExplicit passes when output goes to outDir or outFile, or nothing is emitted.
func emitDestinationExplicit(root configdoc.Value) bool {
	if compilerOption(root, "noEmit").IsTrue() {
		return true
	}
	return len(compilerOption(root, "outDir").NormalizedText()) > 0 || len(compilerOption(root, "outFile").NormalizedText()) > 0
}

func declarationCompatibleWithEmit(root configdoc.Value) bool {
	if !compilerOption(root, "declaration").IsTrue() || !compilerOption(root, "noEmit").IsTrue() {
		return true
	}
	return compilerOption(root, "emitDeclarationOnly").IsTrue()
}

func containsText(candidates []string, text string) bool {
	for _, candidate := range candidates {
		if candidate == text {
			return true
		}
	}
	return false
}
