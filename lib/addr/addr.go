// Package addr implements address representations for the overlay and
// mixnet transports cyphernet speaks to: Tor v3 onion services, I2P b32
// destinations, and Nym sphinx recipients.
//
// Address types are collaborators of the Noise engine, not part of it: the
// engine only ever sees the opaque key bytes an address carries. A session
// is bound to an address by convention between the two endpoints, typically
// by feeding Bytes() (or another agreed serialization) into the handshake
// prologue.
package addr

import (
	"net"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

var (
	ErrInvalidAddrLength = oops.Errorf("addr: invalid address length")
	ErrInvalidChecksum   = oops.Errorf("addr: checksum mismatch")
	ErrInvalidVersion    = oops.Errorf("addr: unsupported address version")
	ErrInvalidFormat     = oops.Errorf("addr: unrecognized address format")
)

// Addr is implemented by every overlay address type in this package. The
// net.Addr Network method names the overlay ("onion", "i2p", "nym") and
// String renders the canonical text form.
type Addr interface {
	net.Addr

	// Bytes returns the address's canonical binary serialization, suitable
	// for feeding into a Noise prologue.
	Bytes() []byte
}

// Parse dispatches an address string to the overlay-specific parser by its
// well-known suffix or separator.
func Parse(s string) (Addr, error) {
	switch {
	case strings.HasSuffix(s, onionSuffix):
		return ParseOnionAddr(s)
	case strings.HasSuffix(s, i2pSuffix):
		return ParseI2PAddr(s)
	case strings.Contains(s, "@"):
		return ParseNymAddr(s)
	}
	log.WithField("addr", s).Debug("Address format not recognized")
	return nil, ErrInvalidFormat
}
