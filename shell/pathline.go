package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

var dqEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// PathExportLine generates the rc file line that prepends dir to PATH.
//
//	posix, bash, zsh: export PATH="/opt/tool/bin:$PATH"
//	fish:             set -gx PATH "/opt/tool/bin" $PATH
func PathExportLine(shell ShellType, dir string) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}
	if err := validateLine(dir); err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		return "", fmt.Errorf("directory must be absolute: %q", dir)
	}

	quoted := dqEscaper.Replace(dir)
	switch shell {
	case ShellFish:
		return fmt.Sprintf(`set -gx PATH "%s" $PATH`, quoted), nil
	default:
		return fmt.Sprintf(`export PATH="%s:$PATH"`, quoted), nil
	}
}
