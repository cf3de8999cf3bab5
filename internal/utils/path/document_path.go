package pathutils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// DocumentPathResolver normalizes configuration document paths supplied on the
// command line or in configuration files.
type DocumentPathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
}

// NewDocumentPathResolver constructs a resolver backed by the operating system home lookup.
func NewDocumentPathResolver() DocumentPathResolver {
	return NewDocumentPathResolverWithProvider(os.UserHomeDir)
}

// NewDocumentPathResolverWithProvider constructs a resolver with a custom home directory provider.
func NewDocumentPathResolverWithProvider(provider HomeDirectoryProvider) DocumentPathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return DocumentPathResolver{homeDirectoryProvider: provider}
}

// Resolve picks the first non-blank candidate, trims it, and expands a leading
// "~" to the home directory. An empty string is returned when every candidate is blank.
func (resolver DocumentPathResolver) Resolve(candidatePaths ...string) string {
	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}
		return resolver.expandHome(trimmedPath)
	}
	return ""
}

func (resolver DocumentPathResolver) expandHome(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	var relativePath string
	switch {
	case candidatePath == tildeSymbolConstant:
		relativePath = ""
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		relativePath = strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant)
	case strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)):
		relativePath = strings.TrimPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator))
	default:
		// ~user forms are left to the shell.
		return candidatePath
	}

	provider := resolver.homeDirectoryProvider
	if provider == nil {
		provider = os.UserHomeDir
	}
	homeDirectory, homeDirectoryError := provider()
	if homeDirectoryError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}

	return filepath.Join(homeDirectory, relativePath)
}
