package signing

import "fmt"

// OwnerAddressFormatError is returned for an owner address that is not a valid account address.
type OwnerAddressFormatError struct {
	Address string
}

func (e *OwnerAddressFormatError) Error() string {
	return fmt.Sprintf("invalid owner address %q", e.Address)
}

// RegisterNonceFormatError is returned for a negative register nonce.
type RegisterNonceFormatError struct {
	Nonce int64
}

func (e *RegisterNonceFormatError) Error() string {
	return fmt.Sprintf("invalid register nonce %d: must be a non-negative integer", e.Nonce)
}

// SignatureVerificationError is returned when a signature does not verify for the canonical message.
type SignatureVerificationError struct {
	Message string
	Err     error
}

func (e *SignatureVerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signature verification failed for message %q: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("signature verification failed for message %q", e.Message)
}

func (e *SignatureVerificationError) Unwrap() error {
	return e.Err
}
