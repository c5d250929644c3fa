package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// EnvBrowser overrides the command used to open URLs
const EnvBrowser = "BROWSER"

// browserOpenedMsg contains the result of opening a URL
type browserOpenedMsg struct {
	url string
	err error
}

// BrowserOps opens graph URLs in the desktop browser
type BrowserOps struct {
	command func(url string) *exec.Cmd
}

// NewBrowserOps creates a browser opener for the current platform
func NewBrowserOps() *BrowserOps {
	return &BrowserOps{command: browserCommand}
}

func browserCommand(url string) *exec.Cmd {
	if b := os.Getenv(EnvBrowser); b != "" {
		return exec.Command(b, url)
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// Open starts the browser without waiting for it to exit
func (b *BrowserOps) Open(url string) error {
	if url == "" {
		return fmt.Errorf("no graph URL to open")
	}
	cmd := b.command(url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
