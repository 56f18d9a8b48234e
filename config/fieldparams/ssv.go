package field_params

const (
	BLSSecretKeyLength = 32   // BLSSecretKeyLength defines the byte length of a BLS secret key.
	BLSPubkeyLength    = 48   // BLSPubkeyLength defines the byte length of a BLS public key.
	BLSSignatureLength = 96   // BLSSignatureLength defines the byte length of a BLSSignature.
	EthAddressLength   = 20   // EthAddressLength defines the byte length of an owner account address.
	MinClusterSize     = 3    // MinClusterSize defines the smallest operator set a validator key can be split for.
	OperatorRSAKeyBits = 2048 // OperatorRSAKeyBits defines the size of operator encryption keys.
	KeySharesVersion   = "v4" // KeySharesVersion tags the key shares document format.
	HexPrefix          = "0x" // HexPrefix prefixes every hex encoded key and payload field.
	KeystoreVersion    = 4    // KeystoreVersion is the EIP-2335 keystore version accepted for decryption.
)
