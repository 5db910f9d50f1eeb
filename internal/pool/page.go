// Package pool drives the liquidity-pool creation flow: it keeps no form
// state of its own, gives live feedback on field changes and hands a
// verified link to the outbound guard on submit.
package pool

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
	"poolgate/internal/linkguard"
	"poolgate/internal/notify"
	"poolgate/internal/poolurl"
	"poolgate/internal/presenter"
)

// Confirmation prompts. These are the only strings ever passed to the guard.
const (
	ConfirmPoolCreation = "Open Raydium to create a liquidity pool for your token?"
	ConfirmVisitDEX     = "Visit the official Raydium website?"
)

// Notification titles and descriptions shown by the flow.
const (
	TitleAddressRequired = "Token Address Required"
	TitleInvalidAddress  = "Invalid Token Address"
	TitleInvalidInput    = "Invalid Input"
	TitleSecurityBlock   = "Security Block"
	TitleBlocked         = "Blocked"
	TitleBusy            = "Please Wait"
	TitleOpened          = "Raydium Opened"

	DescAddressRequired = "Please enter a valid token mint address first"
	DescSecurityBlock   = "The link was blocked for security reasons"
	DescBlocked         = "This link has been blocked for security reasons"
	DescOpened          = "Complete the pool creation on Raydium, then add your initial liquidity."

	MsgFixAddress = "Please fix the token address before proceeding"
	MsgAmount     = "Amount must be a non-negative number."
)

// Outcome is the terminal result of one submit or visit attempt.
type Outcome string

const (
	OutcomeOpened  Outcome = "opened"
	OutcomeBlocked Outcome = "blocked"
	OutcomeInvalid Outcome = "invalid"
	OutcomeMissing Outcome = "missing"
	OutcomeBusy    Outcome = "busy"
)

// Form is the caller-held form state, passed by value.
type Form struct {
	TokenAddress string
	SolAmount    string
	TokenAmount  string
}

// FieldState is the feedback for one field after a change.
type FieldState struct {
	Value string
	Error string
	// CanSubmit is false whenever the action control must be disabled.
	CanSubmit bool
}

// Config holds the page collaborators.
type Config struct {
	Validator *address.Validator
	Builder   *poolurl.Builder
	Guard     *linkguard.Guard
	Notifier  notify.Notifier
	Network   hosts.Network
	Logger    *slog.Logger
}

// Page is the pool creation flow.
type Page struct {
	validator *address.Validator
	builder   *poolurl.Builder
	guard     *linkguard.Guard
	notifier  notify.Notifier
	network   hosts.Network
	logger    *slog.Logger

	inFlight atomic.Bool
}

// New creates a page. Missing collaborators get safe defaults: the
// structural validator, the default registry, a guard that declines and a
// notifier that discards.
func New(cfg Config) *Page {
	p := &Page{
		validator: cfg.Validator,
		builder:   cfg.Builder,
		guard:     cfg.Guard,
		notifier:  cfg.Notifier,
		network:   cfg.Network,
		logger:    cfg.Logger,
	}
	if p.validator == nil {
		p.validator = address.NewValidator(address.StrictnessStructural)
	}
	if p.builder == nil {
		p.builder = poolurl.NewBuilder(p.validator, nil)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.guard == nil {
		p.guard = linkguard.New(linkguard.Config{Logger: p.logger})
	}
	if p.notifier == nil {
		p.notifier = &notify.Recorder{}
	}
	if p.network == "" {
		p.network = hosts.DefaultNetwork
	}
	return p
}

// Network returns the cluster pool links are built for.
func (p *Page) Network() hosts.Network {
	return p.network
}

// AddressChanged gives live feedback for the token address field. An empty
// field shows no error but still disables the action.
func (p *Page) AddressChanged(value string) FieldState {
	if value == "" {
		return FieldState{Value: value}
	}
	result := p.validator.Validate(value)
	return FieldState{Value: value, Error: result.Error, CanSubmit: result.IsValid}
}

// AmountChanged gives feedback for a liquidity amount field. Amounts are
// optional and never leave the page.
func (p *Page) AmountChanged(value string) FieldState {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return FieldState{Value: value, CanSubmit: true}
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return FieldState{Value: value, Error: MsgAmount}
	}
	return FieldState{Value: value, CanSubmit: true}
}

// Submit validates the form again, builds the pool link and asks the guard
// to open it. Overlapping submissions are refused.
func (p *Page) Submit(form Form) Outcome {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.notify(TitleBusy, presenter.Present(presenter.ErrBusy, ""), notify.SeverityDefault)
		return OutcomeBusy
	}
	defer p.inFlight.Store(false)

	if form.TokenAddress == "" {
		p.notify(TitleAddressRequired, DescAddressRequired, notify.SeverityDestructive)
		return OutcomeMissing
	}

	result := p.validator.Validate(form.TokenAddress)
	if !result.IsValid {
		p.notify(TitleInvalidAddress, result.Error, notify.SeverityDestructive)
		return OutcomeInvalid
	}

	link, err := p.builder.BuildPoolCreationURL(form.TokenAddress, p.network)
	if err != nil {
		p.logger.Warn("failed to build pool link", "network", p.network, "error", err)
		p.notify(TitleInvalidInput, presenter.Present(err, presenter.ContextValidation), notify.SeverityDestructive)
		return OutcomeInvalid
	}

	if !p.guard.OpenVerifiedURL(link, ConfirmPoolCreation) {
		p.notify(TitleSecurityBlock, DescSecurityBlock, notify.SeverityDestructive)
		return OutcomeBlocked
	}

	p.notify(TitleOpened, DescOpened, notify.SeveritySuccess)
	return OutcomeOpened
}

// VisitDEX opens the DEX landing page behind the same guard.
func (p *Page) VisitDEX() Outcome {
	return p.OpenExternal(hosts.DEXHomeURL, ConfirmVisitDEX)
}

// OpenExternal opens a developer-supplied link. confirmMessage must be static
// text, never user input.
func (p *Page) OpenExternal(link, confirmMessage string) Outcome {
	if !p.guard.OpenVerifiedURL(link, confirmMessage) {
		p.notify(TitleBlocked, DescBlocked, notify.SeverityDestructive)
		return OutcomeBlocked
	}
	return OutcomeOpened
}

func (p *Page) notify(title, description string, severity notify.Severity) {
	p.notifier.Notify(notify.Notification{
		Title:       title,
		Description: description,
		Severity:    severity,
	})
}
