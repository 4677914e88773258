package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Reveal opens path in the platform file manager so the user can find
// the measurement files.
func Reveal(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
