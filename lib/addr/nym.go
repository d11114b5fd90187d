package addr

import (
	"strings"

	"github.com/go-i2p/go-cyphernet/lib/encoding/base58"
)

const (
	// NymKeyLen is the length of each of the three keys a Nym recipient
	// carries.
	NymKeyLen = 32

	// NymAddrLen is the length of the binary recipient serialization.
	NymAddrLen = 3 * NymKeyLen
)

// NymAddr is a Nym mixnet recipient: the client's identity key, the
// client's encryption key, and the identity key of the gateway the client
// is registered with. The text form is
// base58(identity) + "." + base58(encryption) + "@" + base58(gateway).
type NymAddr struct {
	Identity   [NymKeyLen]byte
	Encryption [NymKeyLen]byte
	Gateway    [NymKeyLen]byte
}

// NewNymAddr builds a recipient from its three 32-byte keys.
func NewNymAddr(identity, encryption, gateway []byte) (NymAddr, error) {
	if len(identity) != NymKeyLen || len(encryption) != NymKeyLen || len(gateway) != NymKeyLen {
		return NymAddr{}, ErrInvalidAddrLength
	}
	var a NymAddr
	copy(a.Identity[:], identity)
	copy(a.Encryption[:], encryption)
	copy(a.Gateway[:], gateway)
	return a, nil
}

// ParseNymAddr decodes the "identity.encryption@gateway" text form.
func ParseNymAddr(s string) (NymAddr, error) {
	client, gateway, found := strings.Cut(s, "@")
	if !found {
		return NymAddr{}, ErrInvalidFormat
	}
	identity, encryption, found := strings.Cut(client, ".")
	if !found {
		return NymAddr{}, ErrInvalidFormat
	}
	var a NymAddr
	for _, part := range []struct {
		encoded string
		dst     []byte
	}{
		{identity, a.Identity[:]},
		{encryption, a.Encryption[:]},
		{gateway, a.Gateway[:]},
	} {
		raw, err := base58.DecodeString(part.encoded)
		if err != nil {
			return NymAddr{}, ErrInvalidFormat
		}
		if len(raw) != NymKeyLen {
			return NymAddr{}, ErrInvalidAddrLength
		}
		copy(part.dst, raw)
	}
	return a, nil
}

// Network implements net.Addr.
func (a NymAddr) Network() string { return "nym" }

// String renders the canonical recipient form.
func (a NymAddr) String() string {
	return base58.EncodeToString(a.Identity[:]) + "." +
		base58.EncodeToString(a.Encryption[:]) + "@" +
		base58.EncodeToString(a.Gateway[:])
}

// Bytes returns identity || encryption || gateway.
func (a NymAddr) Bytes() []byte {
	out := make([]byte, 0, NymAddrLen)
	out = append(out, a.Identity[:]...)
	out = append(out, a.Encryption[:]...)
	out = append(out, a.Gateway[:]...)
	return out
}
