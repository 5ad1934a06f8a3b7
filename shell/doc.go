// Package shell lets installers and setup scripts durably change a user's
// Unix shell environment.
//
// This package handles:
//   - Detecting the user's shell (fish, zsh, bash, or a generic posix shell)
//   - Locating the shell's configuration files (rc files)
//   - Checking whether a directory is already in $PATH
//   - Appending and removing whole lines in rc files, idempotently
//
// # Shell Detection
//
// Shell detection tries, in order:
//  1. $SHELL environment variable (base name must be exactly fish, zsh or bash)
//  2. Parent process names, only when enabled with WithProcessAncestry
//  3. ShellPosix
//
// An unrecognized shell is not an error. A DetectError is only returned when
// the environment cannot be inspected at all, e.g. on Windows or when the
// context is cancelled during the process table walk.
//
// # RC Files
//
// Candidates, primary first:
//   - fish:  $XDG_CONFIG_HOME/fish/conf.d or ~/.config/fish/conf.d (created on lookup)
//   - zsh:   ${ZDOTDIR:-~}/.zshenv, then .zshrc if it exists
//   - bash:  ~/.bashrc, ~/.bash_profile, ~/.bash_login
//   - posix: ~/.profile
//
// Edits go to the primary candidate (for fish, a fragment file inside
// conf.d). Removals through Manager sweep every candidate.
//
// # Editing
//
// Lines are matched exactly; nothing is trimmed. Append is a no-op when the
// line is present and otherwise creates the file if needed. Remove rewrites
// the file through a temporary file and rename, keeping every other line
// byte for byte with its own line ending. A file without a final newline
// keeps that shape unless the removed line was the unterminated last line,
// in which case the preceding line's newline remains.
//
// # Example Usage
//
//	manager, err := shell.NewManager(shell.Config{})
//
//	result, err := manager.AddToPath(ctx, "/opt/tool/bin", shell.SetupOptions{
//	    Backup: true,
//	})
package shell
