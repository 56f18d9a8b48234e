package threshold

import "fmt"

// InvalidOperatorCountError is returned when a key is split for fewer operators than a cluster requires.
type InvalidOperatorCountError struct {
	Count   int
	Minimum int
}

func (e *InvalidOperatorCountError) Error() string {
	return fmt.Sprintf("invalid operator count %d: at least %d operators are required", e.Count, e.Minimum)
}

// ThresholdSchemeError wraps a failure of the underlying field or curve arithmetic.
type ThresholdSchemeError struct {
	Reason string
	Err    error
}

func (e *ThresholdSchemeError) Error() string {
	if e.Err == nil {
		return "threshold scheme: " + e.Reason
	}
	return fmt.Sprintf("threshold scheme: %s: %v", e.Reason, e.Err)
}

func (e *ThresholdSchemeError) Unwrap() error {
	return e.Err
}
