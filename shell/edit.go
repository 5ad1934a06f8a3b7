package shell

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Editor performs idempotent whole-line edits on rc files.
//
// Lines are compared byte for byte with their terminator ("\n" or "\r\n")
// stripped; no whitespace trimming. Edits keep every other byte of the file
// as it was. The Editor does no locking: callers editing the same file from
// several goroutines or processes must serialize access themselves.
type Editor struct {
	fs     afero.Fs
	logger Logger
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithEditorFs sets the filesystem.
func WithEditorFs(fs afero.Fs) EditorOption {
	return func(e *Editor) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// WithEditorLogger sets the logger.
func WithEditorLogger(l Logger) EditorOption {
	return func(e *Editor) {
		e.logger = loggerOrNop(l)
	}
}

// NewEditor creates an Editor over the OS filesystem.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{
		fs:     afero.NewOsFs(),
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AppendToRCFile appends line to the rc file at path unless it is already
// present.
func AppendToRCFile(path, line string) error {
	_, err := NewEditor().Append(path, line)
	return err
}

// RemoveFromRCFile removes every line equal to line from the rc file at path.
// A missing file is not an error.
func RemoveFromRCFile(path, line string) error {
	_, err := NewEditor().Remove(path, line)
	return err
}

// Append adds line to the end of the file unless an identical line exists.
// A missing file (and its parent directories) is created. If the file does
// not end in a newline one is written first, in the file's own convention.
func (e *Editor) Append(path, line string) (*EditResult, error) {
	if err := validateLine(line); err != nil {
		return nil, &RCFileError{Op: "append", Path: path, Message: "invalid line", Cause: err}
	}

	content, exists, err := e.read("append", path)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	if indexLine(lines, line) >= 0 {
		e.logger.Debug("line already present", "path", path)
		return &EditResult{Path: path, LineCount: len(lines)}, nil
	}

	if !exists {
		if err := e.fs.MkdirAll(filepath.Dir(path), rcDirMode); err != nil {
			return nil, &RCFileError{
				Op:      "append",
				Path:    path,
				Message: "failed to create parent directory",
				Cause:   err,
			}
		}
	}

	eol := newlineStyle(lines)
	var b strings.Builder
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		b.WriteString(eol)
	}
	b.WriteString(line)
	b.WriteString(eol)

	file, err := e.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, rcFileMode)
	if err != nil {
		return nil, &RCFileError{Op: "append", Path: path, Message: "failed to open file", Cause: err}
	}

	if _, err := file.WriteString(b.String()); err != nil {
		file.Close()
		return nil, &RCFileError{Op: "append", Path: path, Message: "failed to write line", Cause: err}
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return nil, &RCFileError{Op: "append", Path: path, Message: "failed to sync file", Cause: err}
	}
	if err := file.Close(); err != nil {
		return nil, &RCFileError{Op: "append", Path: path, Message: "failed to close file", Cause: err}
	}

	e.logger.Info("appended line to rc file", "path", path, "created", !exists)
	return &EditResult{
		Path:      path,
		Modified:  true,
		Created:   !exists,
		LineCount: len(lines) + 1,
	}, nil
}

// Remove deletes every line equal to line. The file is rewritten only if
// something matched; the rewrite goes through a temporary file in the same
// directory and a rename, so an interrupted write leaves the original intact.
// Permission bits are kept but ownership is not: the replaced file belongs
// to the calling user, so running as root against another user's rc file
// leaves it owned by root.
func (e *Editor) Remove(path, line string) (*EditResult, error) {
	if err := validateLine(line); err != nil {
		return nil, &RCFileError{Op: "remove", Path: path, Message: "invalid line", Cause: err}
	}

	content, exists, err := e.read("remove", path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &EditResult{Path: path}, nil
	}

	lines := splitLines(content)
	var kept strings.Builder
	kept.Grow(len(content))
	removed := 0
	for _, l := range lines {
		if l.text == line {
			removed++
			continue
		}
		kept.WriteString(l.text)
		kept.WriteString(l.eol)
	}

	result := &EditResult{Path: path, LineCount: len(lines) - removed}
	if removed == 0 {
		return result, nil
	}

	if err := e.replace(path, []byte(kept.String())); err != nil {
		return nil, err
	}

	e.logger.Info("removed line from rc file", "path", path, "count", removed)
	result.Modified = true
	result.LinesRemoved = removed
	return result, nil
}

// Contains reports whether the file has a line equal to line. A missing
// file contains nothing.
func (e *Editor) Contains(path, line string) (bool, error) {
	content, _, err := e.read("read", path)
	if err != nil {
		return false, err
	}
	return indexLine(splitLines(content), line) >= 0, nil
}

// Backup copies the rc file to path+BackupSuffix, overwriting an older
// backup. It returns "" if there is no file to back up.
func (e *Editor) Backup(path string) (string, error) {
	content, exists, err := e.read("backup", path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}

	backupPath := path + BackupSuffix
	if err := afero.WriteFile(e.fs, backupPath, []byte(content), rcFileMode); err != nil {
		return "", &RCFileError{
			Op:      "backup",
			Path:    backupPath,
			Message: "failed to write backup file",
			Cause:   err,
		}
	}

	e.logger.Debug("rc file backed up", "path", path, "backup", backupPath)
	return backupPath, nil
}

// read returns the file content, or exists=false if there is no file.
func (e *Editor) read(op, path string) (string, bool, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &RCFileError{Op: op, Path: path, Message: "failed to stat file", Cause: err}
	}
	if info.IsDir() {
		return "", false, &RCFileError{Op: op, Path: path, Message: "path is a directory"}
	}

	content, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return "", false, &RCFileError{Op: op, Path: path, Message: "failed to read file", Cause: err}
	}
	return string(content), true, nil
}

// replace swaps the content of path for data, keeping its permissions.
func (e *Editor) replace(path string, data []byte) error {
	info, isLink, err := e.lstat(path)
	if err != nil {
		return &RCFileError{Op: "remove", Path: path, Message: "failed to stat file", Cause: err}
	}
	mode := info.Mode().Perm()

	// Renaming over a symlink would replace the link itself (and detach a
	// dotfile manager's target), so write through it instead.
	if isLink {
		if err := afero.WriteFile(e.fs, path, data, mode); err != nil {
			return &RCFileError{Op: "remove", Path: path, Message: "failed to write file", Cause: err}
		}
		return nil
	}

	tmpFile, err := afero.TempFile(e.fs, filepath.Dir(path), tmpFileGlob)
	if err != nil {
		return &RCFileError{Op: "remove", Path: path, Message: "failed to create temporary file", Cause: err}
	}
	tmpPath := tmpFile.Name()
	defer e.fs.Remove(tmpPath) // no-op once renamed

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return &RCFileError{Op: "remove", Path: path, Message: "failed to write temporary file", Cause: err}
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return &RCFileError{Op: "remove", Path: path, Message: "failed to sync file", Cause: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &RCFileError{Op: "remove", Path: path, Message: "failed to close temporary file", Cause: err}
	}
	if err := e.fs.Chmod(tmpPath, mode); err != nil {
		return &RCFileError{Op: "remove", Path: path, Message: "failed to set permissions", Cause: err}
	}
	if err := e.fs.Rename(tmpPath, path); err != nil {
		return &RCFileError{Op: "remove", Path: path, Message: "failed to rename temp file", Cause: err}
	}
	return nil
}

func (e *Editor) lstat(path string) (os.FileInfo, bool, error) {
	if lstater, ok := e.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			return nil, false, err
		}
		return info, info.Mode()&os.ModeSymlink != 0, nil
	}
	info, err := e.fs.Stat(path)
	return info, false, err
}

// rcLine is one line of an rc file and the terminator that followed it.
// The last line of a file has eol == "" when the file does not end in one.
type rcLine struct {
	text string
	eol  string
}

func splitLines(content string) []rcLine {
	var lines []rcLine
	for content != "" {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, rcLine{text: content})
			break
		}
		l := rcLine{text: content[:i], eol: "\n"}
		if strings.HasSuffix(l.text, "\r") {
			l.text = l.text[:len(l.text)-1]
			l.eol = "\r\n"
		}
		lines = append(lines, l)
		content = content[i+1:]
	}
	return lines
}

func indexLine(lines []rcLine, line string) int {
	for i, l := range lines {
		if l.text == line {
			return i
		}
	}
	return -1
}

// newlineStyle returns the file's first line terminator, "\n" by default.
func newlineStyle(lines []rcLine) string {
	for _, l := range lines {
		if l.eol != "" {
			return l.eol
		}
	}
	return "\n"
}

func validateLine(line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return ErrInvalidLine
	}
	return nil
}
