package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for HTTP status mapping
var (
	// ErrTagConfig marks a required configuration value that is absent
	ErrTagConfig = goerr.NewTag("config_missing")
	// ErrTagValidation marks a malformed or empty request
	ErrTagValidation = goerr.NewTag("validation")
	// ErrTagUpstream marks a roster source fetch failure
	ErrTagUpstream = goerr.NewTag("upstream")
	// ErrTagAuth marks an authentication failure
	ErrTagAuth = goerr.NewTag("auth")
)

// Sentinel errors for domain operations
var (
	ErrNoMembers         = goerr.New("No group members provided", goerr.T(ErrTagValidation))
	ErrIncorrectPassword = goerr.New("Incorrect password", goerr.T(ErrTagAuth))
)
