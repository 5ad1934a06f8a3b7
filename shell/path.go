package shell

import (
	"os"
	"strings"
)

// ExistsInPath reports whether dir is an entry of the process $PATH.
func ExistsInPath(dir string) bool {
	return ExistsInPathEnv(OSEnvironment{}, dir)
}

// ExistsInPathEnv reports whether dir is an entry of $PATH as seen by env.
// An unset PATH contains nothing.
func ExistsInPathEnv(env Environment, dir string) bool {
	pathList, ok := envOrOS(env).LookupEnv(EnvPath)
	if !ok {
		return false
	}
	return PathContains(pathList, dir)
}

// PathContains checks if a PATH-style list contains dir as a whole entry.
// Comparison is textual after trimming trailing separators, so
// "/usr/local/bin/" matches "/usr/local/bin" but "/usr/local/bin2" does not.
// No symlink resolution or absolute/relative canonicalization is done.
func PathContains(pathList, dir string) bool {
	dir = trimTrailingSeparators(dir)
	if dir == "" || pathList == "" {
		return false
	}

	for _, entry := range strings.Split(pathList, string(os.PathListSeparator)) {
		if trimTrailingSeparators(entry) == dir {
			return true
		}
	}
	return false
}

func trimTrailingSeparators(p string) string {
	trimmed := strings.TrimRight(p, string(os.PathSeparator))
	if trimmed == "" && p != "" {
		// "/" and "//" are the root, not an empty entry
		return string(os.PathSeparator)
	}
	return trimmed
}
