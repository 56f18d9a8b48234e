package rsaencryption

import "fmt"

// InvalidOperatorKeyError identifies an operator whose public key cannot be used for encryption.
type InvalidOperatorKeyError struct {
	OperatorID uint64
	Err        error
}

func (e *InvalidOperatorKeyError) Error() string {
	return fmt.Sprintf("invalid public key for operator %d: %v", e.OperatorID, e.Err)
}

func (e *InvalidOperatorKeyError) Unwrap() error {
	return e.Err
}
