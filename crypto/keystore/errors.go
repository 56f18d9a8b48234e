package keystore

import "fmt"

// KeystoreFormatError is returned when a required keystore field is missing or has the wrong shape.
type KeystoreFormatError struct {
	Field  string
	Reason string
}

func (e *KeystoreFormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("malformed keystore: missing field %q", e.Field)
	}
	return fmt.Sprintf("malformed keystore: field %q %s", e.Field, e.Reason)
}

// UnsupportedKeystoreVersionError is returned for unknown KDF, checksum or cipher identifiers
// and for keystore versions other than 4.
type UnsupportedKeystoreVersionError struct {
	Field string
	Value string
}

func (e *UnsupportedKeystoreVersionError) Error() string {
	return fmt.Sprintf("unsupported keystore %s %q", e.Field, e.Value)
}

// DecryptionError is returned for a wrong password or a corrupted keystore.
// The two causes are deliberately indistinguishable.
type DecryptionError struct{}

func (e *DecryptionError) Error() string {
	return "could not decrypt keystore: invalid password or corrupted file"
}
