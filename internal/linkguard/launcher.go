package linkguard

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// BrowserLauncher opens URLs with the platform's default browser. The browser
// runs as its own process and receives nothing but the URL.
type BrowserLauncher struct {
	goos  string
	start func(name string, args ...string) error
}

// NewBrowserLauncher creates a launcher for the running platform.
func NewBrowserLauncher() *BrowserLauncher {
	return &BrowserLauncher{goos: runtime.GOOS, start: startDetached}
}

// Launch starts the browser and returns once the process has been spawned.
func (l *BrowserLauncher) Launch(u *url.URL) error {
	name, args, err := browserCommand(l.goos, u.String())
	if err != nil {
		return err
	}
	return l.start(name, args...)
}

func browserCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{target}, nil
	default:
		return "", nil, fmt.Errorf("no browser launcher for %s", goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}
