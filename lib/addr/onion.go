package addr

import (
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/go-i2p/go-cyphernet/lib/encoding/base32"
)

const (
	// OnionPubKeyLen is the length of the ed25519 public key an onion v3
	// address encodes.
	OnionPubKeyLen = 32

	onionVersion     = 0x03
	onionChecksumLen = 2
	onionSuffix      = ".onion"
	onionEncodedLen  = 56 // base32 of pubkey || checksum || version
)

// onionChecksumPrefix is the domain separator Tor hashes into the address
// checksum (rend-spec-v3).
var onionChecksumPrefix = []byte(".onion checksum")

// OnionAddrV3 is a Tor v3 onion service address: a 32-byte ed25519 public
// key rendered as base32(pubkey || checksum || version) + ".onion".
type OnionAddrV3 [OnionPubKeyLen]byte

// NewOnionAddrV3 builds an address from a service's ed25519 public key.
func NewOnionAddrV3(pubkey []byte) (OnionAddrV3, error) {
	if len(pubkey) != OnionPubKeyLen {
		return OnionAddrV3{}, ErrInvalidAddrLength
	}
	var a OnionAddrV3
	copy(a[:], pubkey)
	return a, nil
}

// ParseOnionAddr decodes and verifies a v3 onion address string. The
// ".onion" suffix is optional.
func ParseOnionAddr(s string) (OnionAddrV3, error) {
	s = strings.TrimSuffix(strings.ToLower(s), onionSuffix)
	if len(s) != onionEncodedLen {
		return OnionAddrV3{}, ErrInvalidAddrLength
	}
	raw, err := base32.DecodeAddr(s)
	if err != nil {
		return OnionAddrV3{}, ErrInvalidFormat
	}
	if len(raw) != OnionPubKeyLen+onionChecksumLen+1 {
		return OnionAddrV3{}, ErrInvalidAddrLength
	}
	version := raw[OnionPubKeyLen+onionChecksumLen]
	if version != onionVersion {
		return OnionAddrV3{}, ErrInvalidVersion
	}
	var a OnionAddrV3
	copy(a[:], raw[:OnionPubKeyLen])
	if checksum := a.checksum(); checksum[0] != raw[OnionPubKeyLen] || checksum[1] != raw[OnionPubKeyLen+1] {
		log.Debug("Onion address checksum mismatch")
		return OnionAddrV3{}, ErrInvalidChecksum
	}
	return a, nil
}

func (a OnionAddrV3) checksum() [onionChecksumLen]byte {
	h := sha3.New256()
	h.Write(onionChecksumPrefix)
	h.Write(a[:])
	h.Write([]byte{onionVersion})
	var sum [onionChecksumLen]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Network implements net.Addr.
func (a OnionAddrV3) Network() string { return "onion" }

// String renders the canonical 56-character address with the ".onion"
// suffix.
func (a OnionAddrV3) String() string {
	checksum := a.checksum()
	raw := make([]byte, 0, OnionPubKeyLen+onionChecksumLen+1)
	raw = append(raw, a[:]...)
	raw = append(raw, checksum[:]...)
	raw = append(raw, onionVersion)
	return base32.EncodeAddr(raw) + onionSuffix
}

// Bytes returns the ed25519 public key the address encodes.
func (a OnionAddrV3) Bytes() []byte {
	return a[:]
}

// PublicKey is an alias for Bytes, named for callers wiring the key into a
// handshake.
func (a OnionAddrV3) PublicKey() []byte {
	return a.Bytes()
}
