package constants

// Input handling limits and defaults shared by the services and the CLI.
const (
	// MaxDocumentSizeBytes caps the size of a single input document.
	// Diffing is quadratic in the worst case, so arbitrarily large inputs
	// are rejected up front rather than left to exhaust memory.
	MaxDocumentSizeBytes = 32 << 20

	// ConfigFileName is the dedicated configuration file searched for in
	// the working directory and its ancestors.
	ConfigFileName = ".treediff.toml"
)

// DocumentExtensions lists the file extensions treated as structured
// documents (parsed with the YAML loader; JSON is a YAML subset).
var DocumentExtensions = []string{".json", ".yaml", ".yml"}

// SourceExtensions lists the file extensions treated as Python source.
var SourceExtensions = []string{".py", ".pyi"}

// DefaultIncludePatterns are the glob patterns used by directory diffs
// when the user specifies none.
var DefaultIncludePatterns = []string{"**/*.json", "**/*.yaml", "**/*.yml"}

// DefaultExcludePatterns filter out directories that never hold inputs.
var DefaultExcludePatterns = []string{"**/.git/**", "**/node_modules/**", "**/__pycache__/**"}
