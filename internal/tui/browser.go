package tui

import (
	"os/exec"
	"runtime"
)

// OpenInBrowser opens a URL in the default browser.
func OpenInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd == nil {
		return nil
	}
	return cmd.Start()
}
