package shell

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
)

// Detection methods reported in DetectionResult.Method
const (
	MethodShellVar      = "$SHELL environment variable"
	MethodParentProcess = "parent process"
	MethodFallback      = "posix fallback"
)

// Detector classifies the running shell from environment state.
type Detector struct {
	env      Environment
	ancestry AncestryFunc
	logger   Logger
	goos     string
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithEnvironment sets the environment detection reads $SHELL from.
func WithEnvironment(env Environment) DetectorOption {
	return func(d *Detector) {
		d.env = envOrOS(env)
	}
}

// WithProcessAncestry enables the parent-process fallback. It is consulted
// only when $SHELL is unset or unrecognized. Pass ProcessAncestry for the
// real process table.
func WithProcessAncestry(fn AncestryFunc) DetectorOption {
	return func(d *Detector) {
		d.ancestry = fn
	}
}

// WithDetectorLogger sets the logger.
func WithDetectorLogger(l Logger) DetectorOption {
	return func(d *Detector) {
		d.logger = loggerOrNop(l)
	}
}

// NewDetector creates a Detector reading the process environment, with
// ancestry inspection disabled.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		env:    OSEnvironment{},
		logger: NopLogger{},
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectShell detects the user's shell from $SHELL, falling back to
// ShellPosix. It only fails on platforms without Unix shells.
func DetectShell() (ShellType, error) {
	result, err := NewDetector().Detect(context.Background())
	if err != nil {
		return "", err
	}
	return result.Shell, nil
}

// Detect detects the user's shell using, in order:
//  1. $SHELL (base name matched case-sensitively)
//  2. the parent process chain, when enabled
//  3. ShellPosix
func (d *Detector) Detect(ctx context.Context) (*DetectionResult, error) {
	if d.goos == "windows" {
		return nil, &DetectError{Message: d.goos, Cause: ErrUnsupportedPlatform}
	}

	if shellPath := getenv(d.env, EnvShell); shellPath != "" {
		if shellType := ParseShellFromPath(shellPath); shellType != ShellPosix {
			d.logger.Debug("shell detected", "method", MethodShellVar, "shell", shellType, "path", shellPath)
			return &DetectionResult{
				Shell:      shellType,
				Method:     MethodShellVar,
				ShellPath:  shellPath,
				Confidence: ConfidenceHigh,
			}, nil
		}
		d.logger.Debug("unrecognized $SHELL", "path", shellPath)
	}

	if d.ancestry != nil {
		result, err := d.detectFromAncestry(ctx)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}

	d.logger.Debug("shell detected", "method", MethodFallback, "shell", ShellPosix)
	return &DetectionResult{
		Shell:      ShellPosix,
		Method:     MethodFallback,
		Confidence: ConfidenceLow,
	}, nil
}

// detectFromAncestry returns nil, nil when no ancestor is a known shell.
func (d *Detector) detectFromAncestry(ctx context.Context) (*DetectionResult, error) {
	names, err := d.ancestry(ctx)
	if ctx.Err() != nil {
		return nil, &DetectError{Message: "process ancestry lookup cancelled", Cause: ctx.Err()}
	}
	if err != nil {
		// Partial chains are still usable
		d.logger.Warn("process ancestry lookup failed", "error", err, "found", len(names))
	}

	for _, name := range names {
		name = strings.TrimPrefix(name, "-")
		if shellType := ParseShellFromPath(name); shellType != ShellPosix {
			d.logger.Debug("shell detected", "method", MethodParentProcess, "shell", shellType, "process", name)
			return &DetectionResult{
				Shell:      shellType,
				Method:     MethodParentProcess,
				ShellPath:  name,
				Confidence: ConfidenceMedium,
			}, nil
		}
	}
	return nil, nil
}

// ParseShellFromPath extracts the shell type from a shell binary path.
// Anything other than an exact fish, zsh or bash base name is ShellPosix.
// Examples:
//   - /bin/bash -> bash
//   - zsh -> zsh
//   - /usr/bin/bash5 -> posix
func ParseShellFromPath(shellPath string) ShellType {
	switch filepath.Base(shellPath) {
	case "fish":
		return ShellFish
	case "zsh":
		return ShellZsh
	case "bash":
		return ShellBash
	default:
		return ShellPosix
	}
}

// ParseShellType parses a user-supplied shell name, e.g. from a flag offered
// after detection failed. "sh" is accepted as posix.
func ParseShellType(name string) (ShellType, error) {
	switch name {
	case "sh":
		return ShellPosix, nil
	default:
		s := ShellType(name)
		if err := ValidateShell(s); err != nil {
			return "", err
		}
		return s, nil
	}
}

// ValidateShell validates that a shell type is supported
func ValidateShell(shell ShellType) error {
	if !shell.IsValid() {
		return &UnsupportedShellError{Shell: shell.String()}
	}
	return nil
}

// SupportedShells returns a list of supported shells
func SupportedShells() []ShellType {
	return []ShellType{ShellFish, ShellZsh, ShellBash, ShellPosix}
}
