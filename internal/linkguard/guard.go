// Package linkguard is the single way out of the application. Every outbound
// navigation goes through Guard.OpenVerifiedURL, which checks the target
// against the trusted host registry and asks the user before anything opens.
package linkguard

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"poolgate/internal/hosts"
)

// BlockReason says why a navigation did not happen.
type BlockReason string

const (
	ReasonUnparseable  BlockReason = "unparseable"
	ReasonHost         BlockReason = "host_not_allowed"
	ReasonScheme       BlockReason = "scheme_not_allowed"
	ReasonUserInfo     BlockReason = "userinfo_present"
	ReasonPort         BlockReason = "port_not_allowed"
	ReasonDeclined     BlockReason = "declined"
	ReasonLaunchFailed BlockReason = "launch_failed"
)

// BlockedNavigationError is returned by Check when a URL may not be opened.
type BlockedNavigationError struct {
	Reason BlockReason
}

func (e *BlockedNavigationError) Error() string {
	return fmt.Sprintf("navigation blocked: %s", e.Reason)
}

// ConfirmationRequest is built right before the user is asked and dropped
// right after.
type ConfirmationRequest struct {
	ID      string
	URL     string
	Message string
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(req ConfirmationRequest) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(req ConfirmationRequest) bool

func (f ConfirmFunc) Confirm(req ConfirmationRequest) bool {
	return f(req)
}

var (
	AlwaysAccept  Confirmer = ConfirmFunc(func(ConfirmationRequest) bool { return true })
	AlwaysDecline Confirmer = ConfirmFunc(func(ConfirmationRequest) bool { return false })
)

// Launcher opens a verified URL in a new, separate browsing context.
type Launcher interface {
	Launch(u *url.URL) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(u *url.URL) error

func (f LauncherFunc) Launch(u *url.URL) error {
	return f(u)
}

// Config holds guard collaborators.
type Config struct {
	Registry  *hosts.Registry // defaults to hosts.Default()
	Confirmer Confirmer       // defaults to AlwaysDecline
	Launcher  Launcher        // defaults to BrowserLauncher
	Logger    *slog.Logger    // defaults to slog.Default()
}

// Guard checks and opens outbound URLs. It holds no per-call state.
type Guard struct {
	registry  *hosts.Registry
	confirmer Confirmer
	launcher  Launcher
	logger    *slog.Logger
}

// New creates a guard. Missing collaborators fail closed.
func New(cfg Config) *Guard {
	g := &Guard{
		registry:  cfg.Registry,
		confirmer: cfg.Confirmer,
		launcher:  cfg.Launcher,
		logger:    cfg.Logger,
	}
	if g.registry == nil {
		g.registry = hosts.Default()
	}
	if g.confirmer == nil {
		g.confirmer = AlwaysDecline
	}
	if g.launcher == nil {
		g.launcher = NewBrowserLauncher()
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Check runs the pre-flight checks without asking or opening anything. The
// returned error, when non-nil, is a *BlockedNavigationError.
func (g *Guard) Check(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || u.Opaque != "" {
		return nil, &BlockedNavigationError{Reason: ReasonUnparseable}
	}

	if !g.registry.AllowsHost(u.Hostname()) {
		return nil, &BlockedNavigationError{Reason: ReasonHost}
	}

	if u.Scheme != "https" {
		return nil, &BlockedNavigationError{Reason: ReasonScheme}
	}

	if u.User != nil {
		return nil, &BlockedNavigationError{Reason: ReasonUserInfo}
	}

	if port := u.Port(); port != "" && port != "443" {
		return nil, &BlockedNavigationError{Reason: ReasonPort}
	}

	return u, nil
}

// OpenVerifiedURL checks rawURL, asks the user with confirmMessage and opens
// the URL only on an affirmative answer. It returns true only when
// navigation was started. confirmMessage must be developer-authored text.
func (g *Guard) OpenVerifiedURL(rawURL, confirmMessage string) (opened bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("outbound navigation aborted", "panic", r)
			opened = false
		}
	}()

	u, err := g.Check(rawURL)
	if err != nil {
		g.logger.Warn("outbound navigation blocked", "reason", reasonOf(err))
		return false
	}

	req := ConfirmationRequest{
		ID:      uuid.NewString(),
		URL:     u.String(),
		Message: confirmMessage,
	}

	if !g.confirmer.Confirm(req) {
		g.logger.Info("outbound navigation declined", "request_id", req.ID, "host", u.Hostname())
		return false
	}

	if err := g.launcher.Launch(u); err != nil {
		g.logger.Error("failed to open browser", "request_id", req.ID, "error", err)
		return false
	}

	g.logger.Info("outbound navigation opened", "request_id", req.ID, "host", u.Hostname())
	return true
}

func reasonOf(err error) BlockReason {
	if b, ok := err.(*BlockedNavigationError); ok {
		return b.Reason
	}
	return ReasonUnparseable
}
