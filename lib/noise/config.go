package noise

import "io"

// A Config provides the details necessary to start a Noise handshake. It is
// never modified by this package and can be reused across handshakes.
type Config struct {
	// CipherSuite is the set of cryptographic primitives that will be used.
	CipherSuite CipherSuite

	// Random is the source of entropy for ephemeral keys. If nil,
	// crypto/rand is used.
	Random io.Reader

	// Pattern is the handshake pattern, usually taken from the pattern table
	// or resolved with LookupPattern.
	Pattern HandshakePattern

	// Initiator must be true if this peer sends the first handshake message.
	Initiator bool

	// Prologue is optional data both parties must supply identically for the
	// handshake to succeed. Overlay callers typically bind the session to an
	// address by passing its serialized bytes here.
	Prologue []byte

	// PresharedKey is the optional 32-byte preshared key. For the psk0
	// placement it must be set up front; for later placements it may be
	// supplied with SetPresharedKey before the message that consumes it.
	PresharedKey []byte

	// PresharedKeyPlacement selects the pskN modifier position when a
	// preshared key is in play.
	PresharedKeyPlacement int

	// StaticKeypair is this peer's static keypair, required by patterns that
	// transmit or pre-share the local static key.
	StaticKeypair DHKey

	// EphemeralKeypair overrides the freshly generated ephemeral keypair.
	// Only fallback-style patterns that pre-message an ephemeral need this;
	// everything else should leave it empty for forward secrecy.
	EphemeralKeypair DHKey

	// PeerStatic is the remote static public key, for patterns where it is
	// known out-of-band before the handshake begins.
	PeerStatic []byte

	// PeerEphemeral is the remote ephemeral public key pre-message, used by
	// fallback patterns.
	PeerEphemeral []byte
}
