package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgInvalidSince      = "invalid since timestamp"
	ErrMsgConflictingCutoff = "only one of -since, -month and -week may be set"
	ErrMsgMissingArgs       = "expected <logdir> and <output> arguments"

	// Whitelist errors
	ErrMsgWhitelistShape = "whitelist entry missing name field"

	// Log directory errors
	ErrMsgLogDirUnreadable = "log directory unreadable"
	ErrMsgLogFileCorrupt   = "log file could not be decompressed"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrInvalidSince      = errors.New(ErrMsgInvalidSince)
	ErrConflictingCutoff = errors.New(ErrMsgConflictingCutoff)
	ErrMissingArgs       = errors.New(ErrMsgMissingArgs)
	ErrWhitelistShape    = errors.New(ErrMsgWhitelistShape)
)
