package configdoc

import (
	"errors"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	directoryPathReasonConstant     = "path is a directory"
	malformedContentReasonConstant  = "content is not well-formed JSON after removing comments and trailing commas"
	nonObjectContentReasonConstant  = "top-level value must be an object"
	emptyContentReasonConstant      = "file is empty"
	keyPathSegmentSeparatorConstant = "."
)

// Document is an immutable, key-path addressable configuration loaded from a file.
type Document struct {
	sourcePath string
	root       gjson.Result
}

// Load reads, normalizes, and parses the configuration at filePath.
func Load(filePath string) (*Document, error) {
	if resolveError := EnsureReadableFile(filePath); resolveError != nil {
		return nil, resolveError
	}

	content, readError := os.ReadFile(filePath)
	if readError != nil {
		return nil, FileNotFoundError{Path: filePath, Cause: readError}
	}

	return Parse(filePath, content)
}

// EnsureReadableFile returns FileNotFoundError unless filePath names an existing regular file.
func EnsureReadableFile(filePath string) error {
	fileInformation, statError := os.Stat(filePath)
	if statError != nil {
		return FileNotFoundError{Path: filePath, Cause: statError}
	}
	if fileInformation.IsDir() {
		return FileNotFoundError{Path: filePath, Cause: errors.New(directoryPathReasonConstant)}
	}
	return nil
}

// Parse builds a Document from raw content. sourcePath is only used for reporting.
func Parse(sourcePath string, content []byte) (*Document, error) {
	normalizedContent, normalizeError := NormalizeTolerantContent(content)
	if normalizeError != nil {
		return nil, ParseError{Path: sourcePath, Reason: normalizeError.Error()}
	}
	normalized := string(normalizedContent)
	if len(strings.TrimSpace(normalized)) == 0 {
		return nil, ParseError{Path: sourcePath, Reason: emptyContentReasonConstant}
	}
	if !gjson.Valid(normalized) {
		return nil, ParseError{Path: sourcePath, Reason: malformedContentReasonConstant}
	}

	root := gjson.Parse(normalized)
	if !root.IsObject() {
		return nil, ParseError{Path: sourcePath, Reason: nonObjectContentReasonConstant}
	}

	return &Document{sourcePath: sourcePath, root: root}, nil
}

// SourcePath returns the path the document was loaded from.
func (document *Document) SourcePath() string {
	return document.sourcePath
}

// Root returns the top-level object.
func (document *Document) Root() Value {
	return Value{result: document.root}
}

// Lookup resolves a dotted key path such as "compilerOptions.strict".
func (document *Document) Lookup(keyPath string) Value {
	return document.Root().Lookup(keyPath)
}

// Value is a read-only view of one node in a Document. The zero Value is absent.
type Value struct {
	result gjson.Result
}

// Lookup resolves a dotted key path relative to this value.
func (value Value) Lookup(keyPath string) Value {
	return Value{result: value.result.Get(escapeKeyPath(keyPath))}
}

// Exists reports whether the key was present.
func (value Value) Exists() bool {
	return value.result.Exists()
}

// IsObject reports whether the value is a JSON object.
func (value Value) IsObject() bool {
	return value.result.IsObject()
}

// IsTrue reports whether the value is the literal true.
func (value Value) IsTrue() bool {
	return value.result.Type == gjson.True
}

// IsFalse reports whether the value is the literal false. Absent values are not false.
func (value Value) IsFalse() bool {
	return value.result.Type == gjson.False
}

// Text returns the string form of the value, or an empty string when absent.
func (value Value) Text() string {
	return value.result.String()
}

// NormalizedText lower-cases and trims the string form for case-insensitive option comparisons.
func (value Value) NormalizedText() string {
	return strings.ToLower(strings.TrimSpace(value.result.String()))
}

// Interface returns the decoded Go value (map[string]any, []any, float64, string, bool, or nil).
func (value Value) Interface() any {
	return value.result.Value()
}

// escapeKeyPath protects gjson wildcard and modifier characters so that paths are plain key lookups.
func escapeKeyPath(keyPath string) string {
	segments := strings.Split(keyPath, keyPathSegmentSeparatorConstant)
	for segmentIndex, segment := range segments {
		segments[segmentIndex] = escapeKeySegment(segment)
	}
	return strings.Join(segments, keyPathSegmentSeparatorConstant)
}

func escapeKeySegment(segment string) string {
	var builder strings.Builder
	for _, character := range segment {
		switch character {
		case '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			builder.WriteRune('\\')
		}
		builder.WriteRune(character)
	}
	return builder.String()
}
