package rsaencryption

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"

	"github.com/pkg/errors"
	fieldparams "github.com/ssvlabs/ssv-keys/config/fieldparams"
)

const (
	pkcs1PublicKeyType  = "RSA PUBLIC KEY"
	pkixPublicKeyType   = "PUBLIC KEY"
	pkcs1PrivateKeyType = "RSA PRIVATE KEY"
)

// ParsePublicKey reads an operator key given as base64 encoded PEM or as raw PEM.
func ParsePublicKey(key string) (*rsa.PublicKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("empty key")
	}
	pemBytes := []byte(key)
	if !strings.HasPrefix(key, "-----BEGIN") {
		decoded, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return nil, errors.Wrap(err, "key is neither PEM nor base64")
		}
		pemBytes = decoded
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("could not decode PEM block")
	}
	switch block.Type {
	case pkcs1PublicKeyType:
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse PKCS#1 public key")
		}
		return pub, nil
	case pkixPublicKeyType:
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse PKIX public key")
		}
		pub, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, errors.Errorf("unsupported public key type %T", parsed)
		}
		return pub, nil
	default:
		return nil, errors.Errorf("unsupported PEM block type %q", block.Type)
	}
}

// EncodePublicKey renders pub the way operators publish their keys: base64 of a PKCS#1 PEM block.
func EncodePublicKey(pub *rsa.PublicKey) string {
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  pkcs1PublicKeyType,
		Bytes: x509.MarshalPKCS1PublicKey(pub),
	})
	return base64.StdEncoding.EncodeToString(pemBytes)
}

// EncodePrivateKey renders priv as base64 of a PKCS#1 PEM block.
func EncodePrivateKey(priv *rsa.PrivateKey) string {
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  pkcs1PrivateKeyType,
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	return base64.StdEncoding.EncodeToString(pemBytes)
}

// ParsePrivateKey reads a key produced by EncodePrivateKey, or the raw PEM.
func ParsePrivateKey(key string) (*rsa.PrivateKey, error) {
	key = strings.TrimSpace(key)
	pemBytes := []byte(key)
	if !strings.HasPrefix(key, "-----BEGIN") {
		decoded, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return nil, errors.Wrap(err, "key is neither PEM nor base64")
		}
		pemBytes = decoded
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil || block.Type != pkcs1PrivateKeyType {
		return nil, errors.New("could not decode RSA private key PEM block")
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

// GenerateKey creates an operator key pair.
func GenerateKey() (*rsa.PrivateKey, string, error) {
	priv, err := rsa.GenerateKey(rand.Reader, fieldparams.OperatorRSAKeyBits)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not generate RSA key")
	}
	return priv, EncodePublicKey(&priv.PublicKey), nil
}
