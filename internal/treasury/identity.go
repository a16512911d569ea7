package treasury

import (
	"fmt"
	"strings"
)

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// ValidateAddress checks that addr is a lowercase bech32-style address with
// the expected human-readable prefix. The checksum is not verified.
func ValidateAddress(addr, prefix string) error {
	if len(addr) < 8 || len(addr) > 90 {
		return fmt.Errorf("%w: %q has invalid length", ErrInvalidIdentity, addr)
	}
	if addr != strings.ToLower(addr) {
		return fmt.Errorf("%w: %q must be lowercase", ErrInvalidIdentity, addr)
	}
	sep := strings.LastIndexByte(addr, '1')
	if sep < 1 || sep+7 > len(addr) {
		return fmt.Errorf("%w: %q has no separator", ErrInvalidIdentity, addr)
	}
	if prefix != "" && addr[:sep] != prefix {
		return fmt.Errorf("%w: %q does not start with %s1", ErrInvalidIdentity, addr, prefix)
	}
	for _, r := range addr[sep+1:] {
		if !strings.ContainsRune(bech32Charset, r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidIdentity, addr, r)
		}
	}
	return nil
}
