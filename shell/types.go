package shell

// ShellType represents a supported shell
type ShellType string

const (
	// ShellFish represents the Fish shell
	ShellFish ShellType = "fish"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellPosix is the generic fallback for any other POSIX-compatible shell
	ShellPosix ShellType = "posix"
)

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellFish, ShellZsh, ShellBash, ShellPosix:
		return true
	default:
		return false
	}
}

// Confidence levels reported in DetectionResult
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DetectionResult contains the result of shell detection
type DetectionResult struct {
	// Shell is the detected shell type
	Shell ShellType
	// Method describes how the shell was detected
	Method string
	// ShellPath is the executable path or process name the shell was matched from
	ShellPath string
	// Confidence is the confidence level (high, medium, low)
	Confidence string
}

// Locations holds the directories rc file paths are derived from.
type Locations struct {
	// Home is the user's home directory. Required.
	Home string
	// ZDotDir overrides Home for zsh startup files when non-empty.
	ZDotDir string
	// ConfigHome overrides Home/.config for fish when non-empty.
	ConfigHome string
}

// EditResult describes what an append or remove did to an rc file.
type EditResult struct {
	// Path is the rc file that was inspected
	Path string
	// Modified is true if the file content changed
	Modified bool
	// Created is true if the file did not exist before the edit
	Created bool
	// LinesRemoved is the number of matching lines a remove deleted
	LinesRemoved int
	// LineCount is the number of lines in the file after the edit
	LineCount int
}

// SetupOptions holds options for Manager operations
type SetupOptions struct {
	// Shell overrides detection when non-empty
	Shell ShellType
	// Force edits the rc file even if the directory is already in PATH
	Force bool
	// Backup creates a backup of the rc file before modification
	Backup bool
	// DryRun reports what would be done without making changes
	DryRun bool
}

// SetupResult contains the result of a Manager operation
type SetupResult struct {
	// Shell is the detected or specified shell type
	Shell ShellType
	// RCFiles are the rc files that were edited (or would be, on a dry run)
	RCFiles []string
	// Line is the exact line added or removed
	Line string
	// Changed indicates if any rc file content changed
	Changed bool
	// AlreadyPresent indicates the line was already in the target rc file
	AlreadyPresent bool
	// AlreadyInPath indicates the directory was already in $PATH and nothing was edited
	AlreadyInPath bool
	// BackupPaths are the backup files created before editing
	BackupPaths []string
	// DryRun echoes SetupOptions.DryRun
	DryRun bool
}
