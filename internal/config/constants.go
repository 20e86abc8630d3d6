package config

import "time"

const (
	// API request timeout
	RequestTimeout = 30 * time.Second

	// Minimum password length enforced before registration is submitted
	MinPasswordLength = 6

	// Delay between a successful registration and the switch to the
	// login view
	RegisterRedirectDelay = 1200 * time.Millisecond

	// Name of the token file inside the per-user config directory
	TokenFileName = "token"

	// Directory under the per-user config dir holding client state
	AppDirName = "zeno"
)
