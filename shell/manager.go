package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Config holds configuration for the shell manager. Zero values select the
// OS filesystem, the process environment and a no-op logger.
type Config struct {
	// Fs is the filesystem rc files are read from and written to
	Fs afero.Fs
	// Env is the environment SHELL, PATH, HOME, ZDOTDIR and XDG_CONFIG_HOME come from
	Env Environment
	// Logger receives debug and info events
	Logger Logger
	// Ancestry enables parent-process detection when $SHELL is inconclusive
	Ancestry AncestryFunc
	// FishFragment is the conf.d file name used for fish (default: whatthepath.fish)
	FishFragment string
}

// Manager orchestrates detect, resolve, check and edit for PATH changes
type Manager struct {
	env      Environment
	logger   Logger
	detector *Detector
	registry *Registry
	editor   *Editor
}

// NewManager creates a new shell manager
func NewManager(config Config) (*Manager, error) {
	if strings.ContainsAny(config.FishFragment, "/\r\n") {
		return nil, fmt.Errorf("invalid fish fragment name: %q", config.FishFragment)
	}

	fs := config.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	env := envOrOS(config.Env)
	logger := loggerOrNop(config.Logger)

	detectorOpts := []DetectorOption{WithEnvironment(env), WithDetectorLogger(logger)}
	if config.Ancestry != nil {
		detectorOpts = append(detectorOpts, WithProcessAncestry(config.Ancestry))
	}

	return &Manager{
		env:      env,
		logger:   logger,
		detector: NewDetector(detectorOpts...),
		registry: NewRegistry(
			WithRegistryFs(fs),
			WithRegistryEnvironment(env),
			WithRegistryLogger(logger),
			WithFishFragment(config.FishFragment),
		),
		editor: NewEditor(WithEditorFs(fs), WithEditorLogger(logger)),
	}, nil
}

// Detector returns the manager's shell detector
func (m *Manager) Detector() *Detector {
	return m.detector
}

// Registry returns the manager's rc file registry
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Editor returns the manager's rc file editor
func (m *Manager) Editor() *Editor {
	return m.editor
}

// AddToPath makes dir part of PATH for future shells by appending an export
// line to the shell's primary rc file. Nothing is edited when dir is already
// in the current PATH, unless opts.Force is set.
func (m *Manager) AddToPath(ctx context.Context, dir string, opts SetupOptions) (*SetupResult, error) {
	shell, err := m.resolveShell(ctx, opts.Shell)
	if err != nil {
		return nil, err
	}

	line, err := PathExportLine(shell, dir)
	if err != nil {
		return nil, fmt.Errorf("generate path line: %w", err)
	}

	result := &SetupResult{Shell: shell, Line: line, DryRun: opts.DryRun}

	if !opts.Force && ExistsInPathEnv(m.env, dir) {
		m.logger.Info("directory already in PATH", "dir", dir)
		result.AlreadyInPath = true
		return result, nil
	}

	rcPath, err := m.registry.PrimaryRCFile(shell)
	if err != nil {
		return nil, fmt.Errorf("get rc file path: %w", err)
	}
	result.RCFiles = []string{rcPath}

	present, err := m.editor.Contains(rcPath, line)
	if err != nil {
		return nil, fmt.Errorf("check rc file: %w", err)
	}
	if present {
		result.AlreadyPresent = true
		return result, nil
	}

	if opts.DryRun {
		return result, nil
	}

	if opts.Backup {
		if err := m.backup(result, rcPath); err != nil {
			return nil, err
		}
	}

	edit, err := m.editor.Append(rcPath, line)
	if err != nil {
		return nil, fmt.Errorf("add path line: %w", err)
	}
	result.Changed = edit.Modified

	return result, nil
}

// RemoveFromPath removes the line AddToPath would write for dir from every
// candidate rc file of the shell. Files without the line are left alone.
func (m *Manager) RemoveFromPath(ctx context.Context, dir string, opts SetupOptions) (*SetupResult, error) {
	shell, err := m.resolveShell(ctx, opts.Shell)
	if err != nil {
		return nil, err
	}

	line, err := PathExportLine(shell, dir)
	if err != nil {
		return nil, fmt.Errorf("generate path line: %w", err)
	}

	files, err := m.registry.EditableRCFiles(shell)
	if err != nil {
		return nil, fmt.Errorf("get rc files: %w", err)
	}

	result := &SetupResult{Shell: shell, Line: line, DryRun: opts.DryRun}
	for _, rcPath := range files {
		present, err := m.editor.Contains(rcPath, line)
		if err != nil {
			return nil, fmt.Errorf("check rc file: %w", err)
		}
		if !present {
			continue
		}
		result.AlreadyPresent = true
		result.RCFiles = append(result.RCFiles, rcPath)

		if opts.DryRun {
			continue
		}

		if opts.Backup {
			if err := m.backup(result, rcPath); err != nil {
				return nil, err
			}
		}

		edit, err := m.editor.Remove(rcPath, line)
		if err != nil {
			return nil, fmt.Errorf("remove path line: %w", err)
		}
		result.Changed = result.Changed || edit.Modified
	}

	return result, nil
}

func (m *Manager) backup(result *SetupResult, rcPath string) error {
	backupPath, err := m.editor.Backup(rcPath)
	if err != nil {
		return fmt.Errorf("backup rc file: %w", err)
	}
	if backupPath != "" {
		result.BackupPaths = append(result.BackupPaths, backupPath)
	}
	return nil
}

func (m *Manager) resolveShell(ctx context.Context, override ShellType) (ShellType, error) {
	if override != "" {
		if err := ValidateShell(override); err != nil {
			return "", err
		}
		return override, nil
	}

	detection, err := m.detector.Detect(ctx)
	if err != nil {
		return "", fmt.Errorf("detect shell: %w", err)
	}
	return detection.Shell, nil
}
