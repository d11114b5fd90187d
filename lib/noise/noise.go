// Package noise implements the Noise Protocol Framework handshake and
// transport-encryption engine used by cyphernet overlays.
//
// Noise is a low-level framework for building crypto protocols. Noise
// protocols support mutual and optional authentication, identity hiding,
// forward secrecy, zero round-trip encryption, and other advanced features.
// For more details, visit https://noiseprotocol.org.
//
// The package is pure state transformation: it owns no sockets, performs no
// I/O, and only turns caller-supplied buffers into handshake messages,
// decrypted payloads, and, on completion, a pair of transport CipherStates.
// Address types (lib/addr) and text encodings (lib/encoding) are consumed by
// callers to produce the opaque key and prologue bytes fed into this engine.
package noise

import (
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()
