package pricing

import "fmt"

// ValidationError reports a malformed line item (negative pages, zero copies).
// It is never retried: the same input always fails the same way.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a structurally incomplete rate table.
// Unknown enum values on a line item are NOT configuration errors — those
// fall back to the standard/none entry. This error is reserved for tables
// the engine refuses to price against (zero rates, bad percentages).
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rate table %s: %s", e.Field, e.Reason)
}
