package config

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// WPA-PSK derivation parameters (IEEE 802.11i).
const (
	pskIterations = 4096
	pskLen        = 32
)

// DerivePSK returns the 256-bit pre-shared key for passphrase on ssid.
// A 64 digit hexadecimal passphrase is taken as the key itself; otherwise
// it must be 8 to 63 ASCII characters.
func DerivePSK(passphrase, ssid string) ([]byte, error) {
	if len(passphrase) == 2*pskLen {
		if psk, err := hex.DecodeString(passphrase); err == nil {
			return psk, nil
		}
	}
	if len(passphrase) < 8 || len(passphrase) > 63 {
		return nil, fmt.Errorf("passphrase must be 8 to 63 characters, got %d", len(passphrase))
	}
	for i := 0; i < len(passphrase); i++ {
		if c := passphrase[i]; c < 0x20 || c > 0x7e {
			return nil, fmt.Errorf("passphrase contains non-printable character at %d", i)
		}
	}
	return pbkdf2.Key([]byte(passphrase), []byte(ssid), pskIterations, pskLen, sha1.New), nil
}
