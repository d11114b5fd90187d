package addr

import (
	"crypto/sha256"
	"strings"

	"github.com/go-i2p/go-cyphernet/lib/encoding/base32"
)

const (
	// I2PAddrLen is the length of an I2P b32 address: the SHA-256 digest of
	// the destination.
	I2PAddrLen = 32

	i2pSuffix     = ".b32.i2p"
	i2pEncodedLen = 52 // unpadded base32 of 32 bytes
)

// I2PAddr is an I2P base32 address, the SHA-256 hash of a destination,
// rendered in I2P's lowercase base32 alphabet with the ".b32.i2p" suffix.
type I2PAddr [I2PAddrLen]byte

// NewI2PAddr wraps a 32-byte destination hash.
func NewI2PAddr(hash []byte) (I2PAddr, error) {
	if len(hash) != I2PAddrLen {
		return I2PAddr{}, ErrInvalidAddrLength
	}
	var a I2PAddr
	copy(a[:], hash)
	return a, nil
}

// I2PAddrFromDestination derives the b32 address of a full binary
// destination.
func I2PAddrFromDestination(dest []byte) I2PAddr {
	return I2PAddr(sha256.Sum256(dest))
}

// ParseI2PAddr decodes a b32 address string. The ".b32.i2p" suffix is
// optional.
func ParseI2PAddr(s string) (I2PAddr, error) {
	s = strings.TrimSuffix(strings.ToLower(s), i2pSuffix)
	if len(s) != i2pEncodedLen {
		return I2PAddr{}, ErrInvalidAddrLength
	}
	raw, err := base32.DecodeAddr(s)
	if err != nil {
		return I2PAddr{}, ErrInvalidFormat
	}
	if len(raw) != I2PAddrLen {
		return I2PAddr{}, ErrInvalidAddrLength
	}
	var a I2PAddr
	copy(a[:], raw)
	return a, nil
}

// Network implements net.Addr.
func (a I2PAddr) Network() string { return "i2p" }

// String renders the canonical 52-character b32 form with the ".b32.i2p"
// suffix.
func (a I2PAddr) String() string {
	return base32.EncodeAddr(a[:]) + i2pSuffix
}

// Bytes returns the destination hash.
func (a I2PAddr) Bytes() []byte {
	return a[:]
}
