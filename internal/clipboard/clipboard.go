// Package clipboard copies text and files to the system clipboard. Text goes
// through atotto/clipboard; file copy needs platform commands so that
// pasting into chat apps yields the animated file rather than a path string.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"

	atotto "github.com/atotto/clipboard"
)

// Copier abstracts the clipboard for tests.
type Copier interface {
	CopyText(text string) error
	CopyFile(path string) error
}

// System is the real clipboard.
type System struct{}

func (System) CopyText(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("copy text to clipboard: %w", err)
	}
	return nil
}

func (System) CopyFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		// File clipboard via AppleScript; NSPasteboard FFI is not worth it.
		script := fmt.Sprintf(`set the clipboard to (POSIX file "%s")`, path)
		cmd = exec.Command("osascript", "-e", script)
	case "linux":
		if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.Command("sh", "-c", fmt.Sprintf("printf 'file://%s' | wl-copy -t text/uri-list", path))
		} else if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("sh", "-c", fmt.Sprintf("printf 'file://%s' | xclip -selection clipboard -t text/uri-list", path))
		}
	case "windows":
		cmd = exec.Command("powershell", "-NoProfile", "-Command",
			fmt.Sprintf(`Set-Clipboard -Path "%s"`, path))
	}

	if cmd == nil {
		return fmt.Errorf("file clipboard not supported on %s", runtime.GOOS)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("copy file to clipboard: %w (%s)", err, out)
	}
	return nil
}
