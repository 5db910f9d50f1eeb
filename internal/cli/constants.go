package cli

const (
	// Input field widths
	AddressInputWidth = 50
	AmountInputWidth  = 20

	// Input character limits. The address limit leaves room past the longest
	// valid mint so over-long pastes still reach the validator.
	AddressInputCharLimit = 64
	AmountInputCharLimit  = 24

	// Defaults
	DefaultAPIBind   = "127.0.0.1"
	DefaultAPIPort   = 8420
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// Config location
	ConfigDirEnv   = "POOLGATE_HOME"
	ConfigFileName = "config.yaml"

	// Form focus slots
	FocusAddress     = 0
	FocusSolAmount   = 1
	FocusTokenAmount = 2
	FocusSubmit      = 3
	FocusVisit       = 4
	MaxFocusSlots    = 5
)
