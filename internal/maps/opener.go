package maps

import (
	"fmt"
	"os/exec"
)

// Starter spawns a process without waiting for it to finish.
type Starter interface {
	Start(name string, args ...string) error
}

// ExecStarter starts commands with os/exec and detaches from them.
type ExecStarter struct{}

// Start implements Starter.
func (ExecStarter) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

// OpenerCommand returns the default URL handler for goos.
func OpenerCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
