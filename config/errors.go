package config

import "fmt"

// ConfigurationError indicates that the deployment configuration itself is
// unusable: a missing or invalid secret volume, or a secret file that exists
// but cannot be read. Startup must abort before any port is bound.
type ConfigurationError struct {
	// Path is the volume or file the error relates to.
	Path string
	// Reason is a human-readable description of what is wrong.
	Reason string
	// Err is the underlying I/O error, if any.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s (%s): %v", e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("configuration error: %s (%s)", e.Reason, e.Path)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError reports a secret value that failed its shape check. Message
// always names the offending field so a misconfigured deployment is diagnosable
// from the startup log alone.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid secret %s: %s", e.Field, e.Message)
}
