package signing

import (
	"github.com/ethereum/go-ethereum/common"
)

// AddressCodec validates account addresses and converts them to checksum form.
type AddressCodec interface {
	ToChecksumAddress(address string) (string, error)
}

// EthAddressCodec implements AddressCodec for Ethereum addresses (EIP-55).
type EthAddressCodec struct{}

// ToChecksumAddress returns the EIP-55 form of a 0x prefixed, 20 byte hex address.
func (EthAddressCodec) ToChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) || len(address) < 2 || (address[:2] != "0x" && address[:2] != "0X") {
		return "", &OwnerAddressFormatError{Address: address}
	}
	return common.HexToAddress(address).Hex(), nil
}
