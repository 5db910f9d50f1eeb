// Package address checks user-supplied token mint addresses before they are
// used anywhere else. The checks are structural only: nothing here talks to
// an RPC node or proves that a mint exists.
package address

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

const (
	// MinLength and MaxLength bound a base58 encoded 32-byte public key.
	MinLength = 32
	MaxLength = 44

	// PublicKeySize is the decoded size of an Ed25519 public key.
	PublicKeySize = 32

	// Alphabet is the Bitcoin base58 alphabet used by Solana addresses.
	Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// zeroAddress is the all-zero public key (the system program). It is never a
// usable token mint.
var zeroAddress = solana.PublicKey{}.String()

// Strictness selects how much work Validate does beyond the structural rules.
type Strictness string

const (
	// StrictnessStructural checks emptiness, length, alphabet and the zero address.
	StrictnessStructural Strictness = "structural"
	// StrictnessChecksummed additionally decodes the address and requires a
	// 32-byte public key. Solana addresses carry no checksum, so full decoding
	// is the strongest offline check there is.
	StrictnessChecksummed Strictness = "checksummed"
)

// ParseStrictness converts a configuration string into a Strictness.
// An empty string selects StrictnessStructural.
func ParseStrictness(s string) (Strictness, error) {
	switch Strictness(strings.ToLower(s)) {
	case "", StrictnessStructural:
		return StrictnessStructural, nil
	case StrictnessChecksummed:
		return StrictnessChecksummed, nil
	default:
		return "", fmt.Errorf("invalid strictness: %s (must be structural or checksummed)", s)
	}
}

// ValidationResult is the verdict for one candidate. Error is set if and only
// if IsValid is false, and is always a sentence that can be shown to a user.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
}

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// User-facing reasons. Kept as constants so callers and tests can compare.
const (
	MsgEmpty          = "Token address is required."
	MsgMultiline      = "Token address must be a single line."
	MsgSurroundSpace  = "Token address must not start or end with spaces."
	MsgControl        = "Token address must not contain spaces or control characters."
	MsgLength         = "Token address must be between 32 and 44 characters long."
	MsgAlphabet       = "Token address contains characters that are not used in Solana addresses (0, O, I and l are never valid)."
	MsgZeroAddress    = "The all-zero system address cannot be used as a token mint."
	MsgNotAPublicKey  = "Token address does not decode to a 32-byte public key."
	addressFieldLabel = "address"
)

// Validator validates mint addresses at a fixed strictness. The zero value
// validates structurally.
type Validator struct {
	strictness Strictness
}

// NewValidator creates a validator. An unknown strictness falls back to
// StrictnessStructural.
func NewValidator(strictness Strictness) *Validator {
	if strictness != StrictnessChecksummed {
		strictness = StrictnessStructural
	}
	return &Validator{strictness: strictness}
}

// Strictness reports the level this validator runs at.
func (v *Validator) Strictness() Strictness {
	if v == nil || v.strictness == "" {
		return StrictnessStructural
	}
	return v.strictness
}

// Validate checks candidate and returns a fresh result.
func (v *Validator) Validate(candidate string) ValidationResult {
	if msg := v.problem(candidate); msg != "" {
		return ValidationResult{IsValid: false, Error: msg}
	}
	return ValidationResult{IsValid: true}
}

// Check is Validate in error form. The returned error, when non-nil, is
// always a *ValidationError.
func (v *Validator) Check(candidate string) error {
	if msg := v.problem(candidate); msg != "" {
		return &ValidationError{Field: addressFieldLabel, Message: msg}
	}
	return nil
}

func (v *Validator) problem(candidate string) string {
	if msg := structuralProblem(candidate); msg != "" {
		return msg
	}

	if v.Strictness() == StrictnessChecksummed {
		decoded, err := base58.Decode(candidate)
		if err != nil || len(decoded) != PublicKeySize {
			return MsgNotAPublicKey
		}
		if solana.PublicKeyFromBytes(decoded).IsZero() {
			return MsgZeroAddress
		}
	}

	return ""
}

// Validate checks candidate with the structural rules.
func Validate(candidate string) ValidationResult {
	return NewValidator(StrictnessStructural).Validate(candidate)
}

func structuralProblem(candidate string) string {
	if candidate == "" {
		return MsgEmpty
	}

	// A line break fails immediately, whatever the length.
	if strings.ContainsAny(candidate, "\n\r\u2028\u2029") {
		return MsgMultiline
	}

	first, _ := utf8.DecodeRuneInString(candidate)
	last, _ := utf8.DecodeLastRuneInString(candidate)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return MsgSurroundSpace
	}

	for _, r := range candidate {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == utf8.RuneError {
			return MsgControl
		}
	}

	if n := utf8.RuneCountInString(candidate); n < MinLength || n > MaxLength {
		return MsgLength
	}

	for _, r := range candidate {
		if !IsBase58Rune(r) {
			return MsgAlphabet
		}
	}

	if candidate == zeroAddress {
		return MsgZeroAddress
	}

	return ""
}

// IsBase58Rune reports whether r belongs to the base58 alphabet.
func IsBase58Rune(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(Alphabet, byte(r)) >= 0
}
