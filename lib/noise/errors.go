package noise

import (
	"github.com/samber/oops"
)

// Error definitions. Every error here is terminal for the instance that
// raised it: a HandshakeState that returns one transitions to its failed
// state and must be discarded, never retried in place. Retries require a
// fresh HandshakeState with fresh ephemeral keys.
var (
	// ErrInvalidPublicKey is returned when supplied public-key bytes do not
	// decode to a valid curve point for the configured DH function.
	ErrInvalidPublicKey = oops.Errorf("noise: invalid public key")

	// ErrAuthFailure is returned when an AEAD authentication tag does not
	// verify. Callers must treat it as a potential active attack; no detail
	// beyond the coarse kind is exposed.
	ErrAuthFailure = oops.Errorf("noise: message authentication failed")

	// ErrOutOfOrder is returned when WriteMessage or ReadMessage is invoked
	// on the wrong turn of the handshake pattern.
	ErrOutOfOrder = oops.Errorf("noise: handshake message out of order")

	// ErrPatternExhausted is returned when the handshake pattern defines no
	// further messages.
	ErrPatternExhausted = oops.Errorf("noise: no handshake messages left")

	// ErrUnknownPattern is returned by LookupPattern for names not in the
	// pattern table.
	ErrUnknownPattern = oops.Errorf("noise: unknown handshake pattern")

	// ErrNonceExhausted is returned when the 64-bit nonce counter would
	// overflow. The counter is checked, never wrapped; 2^64-1 is reserved
	// for rekeying.
	ErrNonceExhausted = oops.Errorf("noise: nonce counter exhausted, rekey or new handshake required")

	// ErrNotReady is returned by Finalize before all pattern messages have
	// been exchanged.
	ErrNotReady = oops.Errorf("noise: handshake not complete")

	// ErrHandshakeFailed guards every entry point of a HandshakeState that
	// has already failed or been finalized.
	ErrHandshakeFailed = oops.Errorf("noise: handshake state is terminal and cannot be reused")

	// ErrMessageTooLong is returned for payloads or messages above MaxMsgLen.
	ErrMessageTooLong = oops.Errorf("noise: message exceeds 65535 bytes")

	// ErrShortMessage is returned when a handshake message is truncated below
	// the key material its tokens require.
	ErrShortMessage = oops.Errorf("noise: message is too short")

	// ErrBadPresharedKey is returned for preshared keys that are not exactly
	// 32 bytes, which the Noise specification mandates.
	ErrBadPresharedKey = oops.Errorf("noise: preshared key must be 32 bytes")

	// ErrMissingStaticKey is returned when a pattern token requires a static
	// keypair that was not supplied in the Config.
	ErrMissingStaticKey = oops.Errorf("noise: pattern requires a static key that is not configured")

	// ErrUnknownPrimitive is returned by ParseProtocolName for DH, cipher,
	// or hash components outside the supported tables.
	ErrUnknownPrimitive = oops.Errorf("noise: unknown cryptographic primitive in protocol name")
)
