package shell

// Environment variable names consulted by the package
const (
	// EnvShell names the user's login shell executable
	EnvShell = "SHELL"

	// EnvPath is the executable search path
	EnvPath = "PATH"

	// EnvHome is the user's home directory
	EnvHome = "HOME"

	// EnvZDotDir relocates zsh startup files
	EnvZDotDir = "ZDOTDIR"

	// EnvXDGConfigHome relocates ~/.config
	EnvXDGConfigHome = "XDG_CONFIG_HOME"
)

// File layout constants
const (
	// DefaultFishFragment is the conf.d file fish PATH edits are written to
	DefaultFishFragment = "whatthepath.fish"

	// BackupSuffix is appended to an rc file path to name its backup
	BackupSuffix = ".whatthepath-backup"

	// maxAncestryDepth bounds how many parent processes detection inspects
	maxAncestryDepth = 8

	rcFileMode  = 0o644
	rcDirMode   = 0o755
	tmpFileGlob = ".whatthepath-tmp-*"
)
