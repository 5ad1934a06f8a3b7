package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/whatthepath/internal/testutil"
)

const exportLine = "export FOO=bar"

func TestEditor_Append(t *testing.T) {
	rcPath := "/home/test/.bashrc"

	tests := []struct {
		name         string
		existing     *string
		line         string
		want         string
		wantModified bool
		wantCreated  bool
		wantLines    int
	}{
		{
			name:         "Nonexistent file is created",
			line:         exportLine,
			want:         "export FOO=bar\n",
			wantModified: true,
			wantCreated:  true,
			wantLines:    1,
		},
		{
			name:         "Empty file",
			existing:     ptr(""),
			line:         exportLine,
			want:         "export FOO=bar\n",
			wantModified: true,
			wantLines:    1,
		},
		{
			name:         "Appends after existing content",
			existing:     ptr("# bashrc\nalias ll='ls -l'\n"),
			line:         exportLine,
			want:         "# bashrc\nalias ll='ls -l'\nexport FOO=bar\n",
			wantModified: true,
			wantLines:    3,
		},
		{
			name:         "Adds missing final newline first",
			existing:     ptr("alias ll='ls -l'"),
			line:         exportLine,
			want:         "alias ll='ls -l'\nexport FOO=bar\n",
			wantModified: true,
			wantLines:    2,
		},
		{
			name:         "Keeps CRLF convention",
			existing:     ptr("alias ll='ls -l'\r\n"),
			line:         exportLine,
			want:         "alias ll='ls -l'\r\nexport FOO=bar\r\n",
			wantModified: true,
			wantLines:    2,
		},
		{
			name:      "Already present is a no-op",
			existing:  ptr("export FOO=bar\nalias ll='ls -l'\n"),
			line:      exportLine,
			want:      "export FOO=bar\nalias ll='ls -l'\n",
			wantLines: 2,
		},
		{
			name:      "Already present without final newline",
			existing:  ptr("# rc\nexport FOO=bar"),
			line:      exportLine,
			want:      "# rc\nexport FOO=bar",
			wantLines: 2,
		},
		{
			name:      "Already present in CRLF file",
			existing:  ptr("export FOO=bar\r\n"),
			line:      exportLine,
			want:      "export FOO=bar\r\n",
			wantLines: 1,
		},
		{
			name:         "Indented line is a different line",
			existing:     ptr("  export FOO=bar\n"),
			line:         exportLine,
			want:         "  export FOO=bar\nexport FOO=bar\n",
			wantModified: true,
			wantLines:    2,
		},
		{
			name:         "Substring is not a match",
			existing:     ptr("export FOO=barbaz\n"),
			line:         exportLine,
			want:         "export FOO=barbaz\nexport FOO=bar\n",
			wantModified: true,
			wantLines:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.existing != nil {
				files[rcPath] = *tt.existing
			}
			fs := testutil.MemFS(t, files)
			editor := NewEditor(WithEditorFs(fs))

			result, err := editor.Append(rcPath, tt.line)
			require.NoError(t, err)

			assert.Equal(t, tt.want, testutil.ReadFile(t, fs, rcPath))
			assert.Equal(t, tt.wantModified, result.Modified)
			assert.Equal(t, tt.wantCreated, result.Created)
			assert.Equal(t, tt.wantLines, result.LineCount)
			assert.Equal(t, rcPath, result.Path)
		})
	}
}

func TestEditor_AppendIdempotent(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/home/test/.zshenv": "# zshenv\n"})
	editor := NewEditor(WithEditorFs(fs))

	first, err := editor.Append("/home/test/.zshenv", exportLine)
	require.NoError(t, err)
	assert.True(t, first.Modified)
	once := testutil.ReadFile(t, fs, "/home/test/.zshenv")

	second, err := editor.Append("/home/test/.zshenv", exportLine)
	require.NoError(t, err)
	assert.False(t, second.Modified)
	assert.Equal(t, once, testutil.ReadFile(t, fs, "/home/test/.zshenv"))
}

func TestEditor_AppendCreatesParentDirs(t *testing.T) {
	home := t.TempDir()
	rcPath := filepath.Join(home, ".config", "fish", "conf.d", "tool.fish")

	result, err := NewEditor().Append(rcPath, `set -gx PATH "/opt/bin" $PATH`)
	require.NoError(t, err)
	assert.True(t, result.Created)

	content, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.Equal(t, "set -gx PATH \"/opt/bin\" $PATH\n", string(content))
}

func TestEditor_Remove(t *testing.T) {
	rcPath := "/home/test/.profile"

	tests := []struct {
		name         string
		existing     string
		want         string
		wantModified bool
		wantRemoved  int
		wantLines    int
	}{
		{
			name:         "Removes every match",
			existing:     "a\nexport FOO=bar\nb\nexport FOO=bar\n",
			want:         "a\nb\n",
			wantModified: true,
			wantRemoved:  2,
			wantLines:    2,
		},
		{
			name:         "Keeps missing final newline",
			existing:     "a\nexport FOO=bar\nb",
			want:         "a\nb",
			wantModified: true,
			wantRemoved:  1,
			wantLines:    2,
		},
		{
			name:         "Removes unterminated last line",
			existing:     "a\nexport FOO=bar",
			want:         "a\n",
			wantModified: true,
			wantRemoved:  1,
			wantLines:    1,
		},
		{
			name:         "Keeps CRLF",
			existing:     "a\r\nexport FOO=bar\r\nb\r\n",
			want:         "a\r\nb\r\n",
			wantModified: true,
			wantRemoved:  1,
			wantLines:    2,
		},
		{
			name:         "Keeps mixed endings of other lines",
			existing:     "a\r\nexport FOO=bar\nb\n",
			want:         "a\r\nb\n",
			wantModified: true,
			wantRemoved:  1,
			wantLines:    2,
		},
		{
			name:         "Only line",
			existing:     "export FOO=bar\n",
			want:         "",
			wantModified: true,
			wantRemoved:  1,
			wantLines:    0,
		},
		{
			name:      "No match leaves file alone",
			existing:  "  export FOO=bar\nexport FOO=barbaz\n",
			want:      "  export FOO=bar\nexport FOO=barbaz\n",
			wantLines: 2,
		},
		{
			name:      "Empty file",
			existing:  "",
			want:      "",
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.MemFS(t, map[string]string{rcPath: tt.existing})
			editor := NewEditor(WithEditorFs(fs))

			result, err := editor.Remove(rcPath, exportLine)
			require.NoError(t, err)

			assert.Equal(t, tt.want, testutil.ReadFile(t, fs, rcPath))
			assert.Equal(t, tt.wantModified, result.Modified)
			assert.Equal(t, tt.wantRemoved, result.LinesRemoved)
			assert.Equal(t, tt.wantLines, result.LineCount)
		})
	}
}

func TestEditor_RemoveNonexistent(t *testing.T) {
	fs := afero.NewMemMapFs()
	editor := NewEditor(WithEditorFs(fs))

	result, err := editor.Remove("/home/test/.bashrc", exportLine)
	require.NoError(t, err)
	assert.False(t, result.Modified)

	exists, err := afero.Exists(fs, "/home/test/.bashrc")
	require.NoError(t, err)
	assert.False(t, exists, "remove must not create the file")
}

func TestEditor_RoundTrip(t *testing.T) {
	originals := []string{
		"",
		"# profile\n",
		"# bashrc\nalias ll='ls -l'\nexport EDITOR=vim\n",
		"# windows-edited\r\nexport A=1\r\n",
	}

	for _, original := range originals {
		t.Run(original, func(t *testing.T) {
			fs := testutil.MemFS(t, map[string]string{"/home/test/.bashrc": original})
			editor := NewEditor(WithEditorFs(fs))

			_, err := editor.Append("/home/test/.bashrc", exportLine)
			require.NoError(t, err)
			_, err = editor.Remove("/home/test/.bashrc", exportLine)
			require.NoError(t, err)

			assert.Equal(t, original, testutil.ReadFile(t, fs, "/home/test/.bashrc"))
		})
	}
}

func TestEditor_RemoveAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	rcPath := filepath.Join(dir, ".bashrc")
	require.NoError(t, os.WriteFile(rcPath, []byte("a\nexport FOO=bar\n"), 0o600))

	_, err := NewEditor().Remove(rcPath, exportLine)
	require.NoError(t, err)

	content, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(content))

	info, err := os.Stat(rcPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "permissions preserved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file left behind")
}

func TestEditor_RemoveThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dotfiles", "bashrc")
	link := filepath.Join(dir, ".bashrc")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("export FOO=bar\nb\n"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	_, err := NewEditor().Remove(link, exportLine)
	require.NoError(t, err)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(content))
}

func TestEditor_Errors(t *testing.T) {
	t.Run("Line with newline", func(t *testing.T) {
		editor := NewEditor(WithEditorFs(afero.NewMemMapFs()))

		_, err := editor.Append("/home/test/.bashrc", "a\nb")
		assert.ErrorIs(t, err, ErrInvalidLine)

		_, err = editor.Remove("/home/test/.bashrc", "a\r")
		assert.ErrorIs(t, err, ErrInvalidLine)
	})

	t.Run("Path is a directory", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/home/test/.bashrc", 0o755))
		editor := NewEditor(WithEditorFs(fs))

		for _, op := range []func(string, string) (*EditResult, error){editor.Append, editor.Remove} {
			_, err := op("/home/test/.bashrc", exportLine)
			var rcErr *RCFileError
			require.ErrorAs(t, err, &rcErr)
			assert.Equal(t, "/home/test/.bashrc", rcErr.Path)
			assert.Contains(t, rcErr.Error(), "directory")
		}
	})

	t.Run("Read-only filesystem", func(t *testing.T) {
		base := testutil.MemFS(t, map[string]string{"/home/test/.bashrc": "export FOO=bar\n"})
		editor := NewEditor(WithEditorFs(afero.NewReadOnlyFs(base)))

		_, err := editor.Append("/home/test/.profile", exportLine)
		var rcErr *RCFileError
		require.ErrorAs(t, err, &rcErr)
		assert.Equal(t, "append", rcErr.Op)

		_, err = editor.Remove("/home/test/.bashrc", exportLine)
		require.ErrorAs(t, err, &rcErr)
		assert.Equal(t, "remove", rcErr.Op)
		assert.Equal(t, "export FOO=bar\n", testutil.ReadFile(t, base, "/home/test/.bashrc"))
	})
}

func TestEditor_Contains(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/home/test/.zshenv": "a\r\nexport FOO=bar\r\n"})
	editor := NewEditor(WithEditorFs(fs))

	got, err := editor.Contains("/home/test/.zshenv", exportLine)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = editor.Contains("/home/test/.zshenv", "export FOO")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = editor.Contains("/home/test/.zshrc", exportLine)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEditor_Backup(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/home/test/.bashrc": "# original\n"})
	editor := NewEditor(WithEditorFs(fs))

	backupPath, err := editor.Backup("/home/test/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "/home/test/.bashrc"+BackupSuffix, backupPath)
	assert.Equal(t, "# original\n", testutil.ReadFile(t, fs, backupPath))

	backupPath, err = editor.Backup("/home/test/.profile")
	require.NoError(t, err)
	assert.Empty(t, backupPath)
}

func TestAppendAndRemoveRCFile(t *testing.T) {
	home := testutil.SetupTestEnv(t)
	bashrc := filepath.Join(home, ".bashrc")
	require.NoError(t, os.WriteFile(bashrc, nil, 0o644))

	require.NoError(t, AppendToRCFile(bashrc, exportLine))
	require.NoError(t, AppendToRCFile(bashrc, exportLine))

	content, err := os.ReadFile(bashrc)
	require.NoError(t, err)
	assert.Equal(t, "export FOO=bar\n", string(content))

	require.NoError(t, RemoveFromRCFile(bashrc, exportLine))

	content, err = os.ReadFile(bashrc)
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, RemoveFromRCFile(filepath.Join(home, ".profile"), exportLine))
	_, err = os.Stat(filepath.Join(home, ".profile"))
	assert.True(t, os.IsNotExist(err))
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		content string
		want    []rcLine
	}{
		{"", nil},
		{"a", []rcLine{{text: "a"}}},
		{"a\n", []rcLine{{text: "a", eol: "\n"}}},
		{"a\r\nb", []rcLine{{text: "a", eol: "\r\n"}, {text: "b"}}},
		{"\n\n", []rcLine{{text: "", eol: "\n"}, {text: "", eol: "\n"}}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitLines(tt.content), "%q", tt.content)
	}
}

func ptr(s string) *string {
	return &s
}
