package shell

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// RCFilesFor returns the candidate rc files for shell under home, primary
// first. It is pure: it touches neither the environment nor the filesystem.
func RCFilesFor(shell ShellType, home string) ([]string, error) {
	return CandidateRCFiles(shell, Locations{Home: home})
}

// CandidateRCFiles returns the candidate rc files for shell, primary first.
//   - fish:  <ConfigHome|Home/.config>/fish/conf.d (a directory)
//   - zsh:   <ZDotDir|Home>/.zshenv, <ZDotDir|Home>/.zshrc
//   - bash:  .bashrc, .bash_profile, .bash_login
//   - posix: .profile
func CandidateRCFiles(shell ShellType, loc Locations) ([]string, error) {
	if err := ValidateShell(shell); err != nil {
		return nil, err
	}
	if loc.Home == "" {
		return nil, ErrHomeDirUnavailable
	}

	switch shell {
	case ShellFish:
		configHome := loc.ConfigHome
		if configHome == "" {
			configHome = filepath.Join(loc.Home, ".config")
		}
		return []string{filepath.Join(configHome, "fish", "conf.d")}, nil
	case ShellZsh:
		base := loc.ZDotDir
		if base == "" {
			base = loc.Home
		}
		return []string{
			filepath.Join(base, ".zshenv"),
			filepath.Join(base, ".zshrc"),
		}, nil
	case ShellBash:
		return []string{
			filepath.Join(loc.Home, ".bashrc"),
			filepath.Join(loc.Home, ".bash_profile"),
			filepath.Join(loc.Home, ".bash_login"),
		}, nil
	default:
		return []string{filepath.Join(loc.Home, ".profile")}, nil
	}
}

// Registry resolves rc files against a real (or injected) environment and
// filesystem.
type Registry struct {
	fs           afero.Fs
	env          Environment
	logger       Logger
	fishFragment string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryFs sets the filesystem.
func WithRegistryFs(fs afero.Fs) RegistryOption {
	return func(r *Registry) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithRegistryEnvironment sets the environment HOME, ZDOTDIR and
// XDG_CONFIG_HOME are read from.
func WithRegistryEnvironment(env Environment) RegistryOption {
	return func(r *Registry) {
		r.env = envOrOS(env)
	}
}

// WithRegistryLogger sets the logger.
func WithRegistryLogger(l Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = loggerOrNop(l)
	}
}

// WithFishFragment sets the conf.d file name PrimaryRCFile returns for fish.
func WithFishFragment(name string) RegistryOption {
	return func(r *Registry) {
		if name != "" {
			r.fishFragment = name
		}
	}
}

// NewRegistry creates a Registry over the OS filesystem and environment.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		fs:           afero.NewOsFs(),
		env:          OSEnvironment{},
		logger:       NopLogger{},
		fishFragment: DefaultFishFragment,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetRCFiles returns the rc files for shell using the process environment
// and the OS filesystem.
func GetRCFiles(shell ShellType) ([]string, error) {
	return NewRegistry().RCFiles(shell)
}

// Locations resolves the directories rc files are derived from.
func (r *Registry) Locations() (Locations, error) {
	home, err := HomeDir(r.env)
	if err != nil {
		return Locations{}, err
	}
	return Locations{
		Home:       home,
		ZDotDir:    absOrEmpty(getenv(r.env, EnvZDotDir)),
		ConfigHome: absOrEmpty(getenv(r.env, EnvXDGConfigHome)),
	}, nil
}

// absOrEmpty drops relative overrides; XDG requires relative values to be
// ignored and a relative ZDOTDIR would depend on the working directory.
func absOrEmpty(dir string) string {
	if !filepath.IsAbs(dir) {
		return ""
	}
	return dir
}

// RCFiles returns the rc files for shell, primary first.
//
// For fish the conf.d directory is created if missing, since fish only
// sources fragments from an existing directory. For zsh, .zshrc is listed
// only when it exists. Nothing else is created here; rc files themselves
// are created by the first append.
func (r *Registry) RCFiles(shell ShellType) ([]string, error) {
	loc, err := r.Locations()
	if err != nil {
		return nil, err
	}

	candidates, err := CandidateRCFiles(shell, loc)
	if err != nil {
		return nil, err
	}

	switch shell {
	case ShellFish:
		confDir := candidates[0]
		if err := r.fs.MkdirAll(confDir, rcDirMode); err != nil {
			return nil, &RCFileError{
				Op:      "resolve",
				Path:    confDir,
				Message: "failed to create fish conf.d directory",
				Cause:   err,
			}
		}
		r.logger.Debug("fish conf.d ready", "path", confDir)
		return candidates, nil
	case ShellZsh:
		files := []string{candidates[0]}
		exists, err := afero.Exists(r.fs, candidates[1])
		if err != nil {
			return nil, &RCFileError{
				Op:      "resolve",
				Path:    candidates[1],
				Message: "failed to stat file",
				Cause:   err,
			}
		}
		if exists {
			files = append(files, candidates[1])
		}
		return files, nil
	default:
		return candidates, nil
	}
}

// PrimaryRCFile returns the file edits for shell should go to: the first
// candidate, or for fish a fragment file inside conf.d. Unlike RCFiles it
// never creates conf.d; the first append does.
func (r *Registry) PrimaryRCFile(shell ShellType) (string, error) {
	if shell == ShellFish {
		loc, err := r.Locations()
		if err != nil {
			return "", err
		}
		candidates, err := CandidateRCFiles(shell, loc)
		if err != nil {
			return "", err
		}
		return filepath.Join(candidates[0], r.fishFragment), nil
	}

	files, err := r.RCFiles(shell)
	if err != nil {
		return "", err
	}
	return files[0], nil
}

// EditableRCFiles returns every regular file an edit for shell may have
// landed in. For fish this is the fragment file; directories are skipped.
func (r *Registry) EditableRCFiles(shell ShellType) ([]string, error) {
	if shell == ShellFish {
		primary, err := r.PrimaryRCFile(shell)
		if err != nil {
			return nil, err
		}
		return []string{primary}, nil
	}
	return r.RCFiles(shell)
}
