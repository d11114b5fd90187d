package noise

import "math"

// MaxNonce is the largest nonce value usable for transport encryption.
// 2^64-1 is reserved for the rekey operation, so Encrypt and Decrypt return
// ErrNonceExhausted once the counter passes this value.
const MaxNonce = uint64(math.MaxUint64) - 1

// rekeyNonce is the reserved nonce used by REKEY(k), per the Noise
// specification.
const rekeyNonce = uint64(math.MaxUint64)

// MaxMsgLen is the maximum number of bytes in a single Noise message,
// handshake or transport, including the authentication tag.
const MaxMsgLen = 65535

// CipherKeyLen is the length of all symmetric cipher keys. Hash functions
// with longer digests are truncated to this length when used as keys.
const CipherKeyLen = 32

// TagLen is the length of the AEAD authentication tag appended to every
// encrypted payload.
const TagLen = 16

// PresharedKeyLen is the mandated length of optional preshared keys.
const PresharedKeyLen = 32

// A MessagePattern is a single token of a handshake pattern: a public key
// to transmit (e, s), a Diffie-Hellman operation to mix (ee, es, se, ss),
// or a preshared-key mix (psk).
type MessagePattern int

// Handshake pattern tokens.
const (
	MessagePatternS MessagePattern = iota
	MessagePatternE
	MessagePatternDHEE
	MessagePatternDHES
	MessagePatternDHSE
	MessagePatternDHSS
	MessagePatternPSK
)

// String returns the token's name as written in the Noise specification.
func (m MessagePattern) String() string {
	switch m {
	case MessagePatternS:
		return "s"
	case MessagePatternE:
		return "e"
	case MessagePatternDHEE:
		return "ee"
	case MessagePatternDHES:
		return "es"
	case MessagePatternDHSE:
		return "se"
	case MessagePatternDHSS:
		return "ss"
	case MessagePatternPSK:
		return "psk"
	}
	return "unknown"
}
