package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckBinary verifies that the conversion tool resolves on PATH (or as a
// direct path) and is executable.
func CheckBinary(binary string) Result {
	const name = "tool binary"

	binary = strings.TrimSpace(binary)
	if binary == "" {
		return Result{Name: name, Detail: "not configured"}
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%q not found on PATH", binary)}
	}
	if err := unix.Access(resolved, unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not executable: %v", resolved, err)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckLogDir verifies that the log directory exists (creating it when
// missing) and is writable. An empty directory passes; logging then stays
// on stderr only.
func CheckLogDir(dir string) Result {
	const name = "log directory"

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Result{Name: name, Passed: true, Detail: "not configured"}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (create: %v)", dir, err)}
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (insufficient permissions: %v)", dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}

// Run executes every check and returns the first failure, or nil when all
// pass.
func Run(binary, logDir string) error {
	for _, result := range []Result{CheckBinary(binary), CheckLogDir(logDir)} {
		if !result.Passed {
			return fmt.Errorf("%s: %s", result.Name, result.Detail)
		}
	}
	return nil
}
