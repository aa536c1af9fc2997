package extract

import "fmt"

// ConfigurationError reports that VCD decoding is unavailable: disabled
// by policy or the decoder could not be constructed. Not retryable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("vcd decoding unavailable: %s", e.Reason)
}

// ValidationError reports a precondition failure on the input file:
// missing, empty, oversize, or not a .vcd. The caller should treat it as
// a user error, not a system fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ParseError reports that every decode strategy failed. Reason carries
// the most specific diagnostic available: the missing-header check takes
// precedence over the raw fallback error.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse file: %s", e.Reason)
}
