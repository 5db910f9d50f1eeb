// Package presenter turns internal errors into short sentences that are safe
// to show an end user. Nothing from the error value itself ever reaches the
// returned text.
package presenter

import (
	"errors"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
	"poolgate/internal/linkguard"
	"poolgate/internal/poolurl"
)

// Context tags callers pass to Present.
const (
	ContextValidation    = "validation"
	ContextNetwork       = "network"
	ContextNavigation    = "navigation"
	ContextConfiguration = "configuration"
)

// The complete set of sentences Present can return.
const (
	MsgInvalidAddress = "Please enter a valid token mint address."
	MsgUnusableLink   = "A secure link could not be created for this token address."
	MsgUnknownNetwork = "The selected network is not supported."
	MsgBlocked        = "This link has been blocked for security reasons."
	MsgBusy           = "A request is already in progress. Please wait."
	MsgValidation     = "The information you entered is not valid. Please check it and try again."
	MsgNetwork        = "A network problem occurred. Please try again later."
	MsgConfiguration  = "The application settings could not be read."
	MsgFallback       = "Something went wrong. Please try again."
)

// ErrBusy signals that an earlier request from the same interaction has not
// finished yet.
var ErrBusy = errors.New("request already in progress")

// Present maps err and a context tag to a fixed sentence. It never fails and
// never returns an empty string.
func Present(err any, context string) string {
	if e, ok := err.(error); ok && e != nil {
		if msg := byType(e); msg != "" {
			return msg
		}
	}

	switch context {
	case ContextValidation:
		return MsgValidation
	case ContextNetwork:
		return MsgNetwork
	case ContextNavigation:
		return MsgBlocked
	case ContextConfiguration:
		return MsgConfiguration
	default:
		return MsgFallback
	}
}

func byType(err error) (msg string) {
	// A misbehaving Error or Unwrap method must not escape.
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()

	var (
		invalid *poolurl.InvalidAddressError
		vErr    *address.ValidationError
		network *hosts.UnknownNetworkError
		blocked *linkguard.BlockedNavigationError
	)

	switch {
	case errors.As(err, &invalid), errors.As(err, &vErr):
		return MsgInvalidAddress
	case errors.As(err, &network):
		return MsgUnknownNetwork
	case errors.As(err, &blocked):
		return MsgBlocked
	case errors.Is(err, poolurl.ErrHostMismatch):
		return MsgUnusableLink
	case errors.Is(err, ErrBusy):
		return MsgBusy
	default:
		return ""
	}
}
