package shell

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// AncestryFunc returns the names of the current process's ancestors,
// nearest first. It may return a partial list together with an error.
type AncestryFunc func(ctx context.Context) ([]string, error)

// ProcessAncestry walks the process table from the parent process upwards
// using gopsutil, stopping at init or after a bounded number of hops.
func ProcessAncestry(ctx context.Context) ([]string, error) {
	var names []string

	pid := int32(os.Getppid())
	for depth := 0; depth < maxAncestryDepth && pid > 1; depth++ {
		if err := ctx.Err(); err != nil {
			return names, err
		}

		proc, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			return names, fmt.Errorf("inspect process %d: %w", pid, err)
		}

		name, err := proc.NameWithContext(ctx)
		if err != nil {
			return names, fmt.Errorf("read name of process %d: %w", pid, err)
		}
		names = append(names, name)

		ppid, err := proc.PpidWithContext(ctx)
		if err != nil {
			return names, fmt.Errorf("read parent of process %d: %w", pid, err)
		}
		if ppid == pid {
			break
		}
		pid = ppid
	}

	return names, nil
}
