package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"poolgate/internal/api"
	"poolgate/internal/hosts"
	"poolgate/internal/linkguard"
	"poolgate/internal/notify"
	"poolgate/internal/pool"
	"poolgate/internal/poolurl"
	"poolgate/internal/presenter"
)

var (
	// ErrInvalidAddress is returned after the reason has been shown
	ErrInvalidAddress = errors.New("invalid token address")
	// ErrNotOpened is returned when a link was blocked or declined
	ErrNotOpened = errors.New("link was not opened")
)

// Runtime carries what the commands share. Confirmer and Launcher default to
// the terminal prompt and the system browser.
type Runtime struct {
	Config    *CLIConfig
	Out       io.Writer
	Confirmer linkguard.Confirmer
	Launcher  linkguard.Launcher
	Logger    *slog.Logger
}

// NewRuntime creates a runtime for the given configuration
func NewRuntime(config *CLIConfig) *Runtime {
	if config == nil {
		config = DefaultConfig()
	}
	return &Runtime{
		Config:    config,
		Out:       os.Stdout,
		Confirmer: &linkguard.TerminalConfirmer{},
		Launcher:  linkguard.NewBrowserLauncher(),
		Logger:    slog.Default(),
	}
}

// Validate checks a token mint address and prints the verdict
func (r *Runtime) Validate(candidate string) error {
	validator := r.Config.Validator()
	result := validator.Validate(candidate)
	if !result.IsValid {
		fmt.Fprintln(r.Out, ErrorStyle.Render("✗ "+pool.TitleInvalidAddress))
		fmt.Fprintln(r.Out, InfoStyle.Render("  "+result.Error))
		return ErrInvalidAddress
	}

	fmt.Fprintln(r.Out, SuccessStyle.Render("✓ Valid token mint address"))
	fmt.Fprintln(r.Out, InfoStyle.Render(fmt.Sprintf("  Strictness: %s", validator.Strictness())))
	return nil
}

// URL prints the pool creation link without opening it
func (r *Runtime) URL(candidate, network string) error {
	n, err := r.resolveNetwork(network)
	if err != nil {
		return err
	}

	builder := poolurl.NewBuilder(r.Config.Validator(), hosts.Default())
	link, err := builder.BuildPoolCreationURL(candidate, n)
	if err != nil {
		r.Logger.Debug("failed to build pool link", "error", err)
		return errors.New(presenter.Present(err, presenter.ContextValidation))
	}

	fmt.Fprintln(r.Out, link)
	return nil
}

// Open builds the pool creation link and opens it after confirmation
func (r *Runtime) Open(candidate, network string) error {
	page, err := r.page(network)
	if err != nil {
		return err
	}

	if outcome := page.Submit(pool.Form{TokenAddress: candidate}); outcome != pool.OutcomeOpened {
		r.Logger.Debug("pool link not opened", "outcome", outcome)
		return ErrNotOpened
	}
	return nil
}

// Visit opens the DEX landing page after confirmation
func (r *Runtime) Visit() error {
	page, err := r.page("")
	if err != nil {
		return err
	}

	if outcome := page.VisitDEX(); outcome != pool.OutcomeOpened {
		return ErrNotOpened
	}
	return nil
}

// Hosts prints the trusted host registry
func (r *Runtime) Hosts() error {
	registry := hosts.Default()

	fmt.Fprintln(r.Out, HeaderStyle.Render("Trusted hosts"))
	for _, host := range registry.Hosts() {
		fmt.Fprintf(r.Out, "  %s\n", host)
	}

	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, HeaderStyle.Render("Pool creation pages"))
	for _, n := range registry.Networks() {
		base, err := registry.BaseURL(n)
		if err != nil {
			continue
		}
		marker := " "
		if n == r.Config.NetworkValue() {
			marker = "▸"
		}
		fmt.Fprintf(r.Out, "%s %-8s %s\n", SelectedStyle.Render(marker), n.Display(), base.String())
	}
	return nil
}

// Serve runs the local HTTP API until interrupted
func (r *Runtime) Serve(ctx context.Context, bind string, port int) error {
	if bind == "" {
		bind = r.Config.API.Bind
	}
	if port == 0 {
		port = r.Config.API.Port
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", port)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(api.Config{
		Validator: r.Config.Validator(),
		Registry:  hosts.Default(),
		Network:   r.Config.NetworkValue(),
		Logger:    r.Logger,
	})

	addr := net.JoinHostPort(bind, strconv.Itoa(port))
	fmt.Fprintln(r.Out, SuccessStyle.Render("✓ Listening on http://"+addr))
	return server.Listen(ctx, addr)
}

func (r *Runtime) page(network string) (*pool.Page, error) {
	n, err := r.resolveNetwork(network)
	if err != nil {
		return nil, err
	}

	validator := r.Config.Validator()
	registry := hosts.Default()
	guard := linkguard.New(linkguard.Config{
		Registry:  registry,
		Confirmer: r.Confirmer,
		Launcher:  r.Launcher,
		Logger:    r.Logger,
	})

	return pool.New(pool.Config{
		Validator: validator,
		Builder:   poolurl.NewBuilder(validator, registry),
		Guard:     guard,
		Notifier:  &notify.TerminalNotifier{Out: r.Out},
		Network:   n,
		Logger:    r.Logger,
	}), nil
}

// resolveNetwork prefers the flag value and falls back to the configuration
func (r *Runtime) resolveNetwork(flag string) (hosts.Network, error) {
	if flag == "" {
		return r.Config.NetworkValue(), nil
	}
	n, err := hosts.ParseNetwork(flag)
	if err != nil {
		return "", errors.New(presenter.Present(err, presenter.ContextConfiguration))
	}
	return n, nil
}
