package noise

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// handshakeStatus tracks a HandshakeState's position in its lifecycle. The
// machine only ever moves forward: inProgress -> complete -> finalized, or
// from any state to failed. failed and finalized are terminal; every entry
// point checks the tag so a dead instance can never be driven again.
type handshakeStatus int

const (
	statusInProgress handshakeStatus = iota
	statusComplete
	statusFinalized
	statusFailed
)

// A HandshakeState drives one Noise handshake from construction to the pair
// of transport CipherStates. Exactly one instance exists per connection
// attempt; it must be driven from a single execution context and discarded
// after Finalize or after any error. A failed handshake is never retried in
// place: construct a fresh HandshakeState, which generates fresh ephemerals.
type HandshakeState struct {
	ss              symmetricState
	s               DHKey  // local static keypair
	e               DHKey  // local ephemeral keypair
	rs              []byte // remote static public key
	re              []byte // remote ephemeral public key
	psk             []byte
	willPsk         bool
	messagePatterns [][]MessagePattern
	shouldWrite     bool
	initiator       bool
	msgIdx          int
	rng             io.Reader
	status          handshakeStatus
}

// NewHandshakeState starts a new handshake using the provided configuration.
func NewHandshakeState(c Config) (*HandshakeState, error) {
	if c.CipherSuite == nil {
		return nil, oops.Errorf("noise: config has no cipher suite")
	}
	if len(c.Pattern.Messages) == 0 {
		return nil, ErrUnknownPattern
	}
	hs := &HandshakeState{
		s:               c.StaticKeypair,
		e:               c.EphemeralKeypair,
		messagePatterns: c.Pattern.Messages,
		shouldWrite:     c.Initiator,
		initiator:       c.Initiator,
		rng:             c.Random,
	}
	if hs.rng == nil {
		hs.rng = rand.Reader
	}
	hs.ss.suite = c.CipherSuite
	if len(c.PeerStatic) > 0 {
		hs.rs = append([]byte(nil), c.PeerStatic...)
	}
	if len(c.PeerEphemeral) > 0 {
		hs.re = append([]byte(nil), c.PeerEphemeral...)
	}

	pskModifier := ""
	// A non-zero placement selects the psk protocol even before the key is
	// known: the key may be supplied with SetPresharedKey up to the message
	// carrying the psk token, and processing that token without one fails
	// with ErrBadPresharedKey. Placement 0 is the zero value, so psk0 is
	// only in play once the key itself is configured.
	if len(c.PresharedKey) > 0 || c.PresharedKeyPlacement >= 1 {
		hs.willPsk = true
		if len(c.PresharedKey) > 0 {
			if err := hs.SetPresharedKey(c.PresharedKey); err != nil {
				return nil, err
			}
		}
		pskModifier = fmt.Sprintf("psk%d", c.PresharedKeyPlacement)
		hs.messagePatterns = append([][]MessagePattern(nil), hs.messagePatterns...)
		if c.PresharedKeyPlacement == 0 {
			hs.messagePatterns[0] = append([]MessagePattern{MessagePatternPSK}, hs.messagePatterns[0]...)
		} else {
			idx := c.PresharedKeyPlacement - 1
			if idx >= len(hs.messagePatterns) {
				return nil, oops.Errorf("noise: psk placement %d exceeds pattern length", c.PresharedKeyPlacement)
			}
			hs.messagePatterns[idx] = append(append([]MessagePattern(nil), hs.messagePatterns[idx]...), MessagePatternPSK)
		}
	}

	protocolName := "Noise_" + c.Pattern.Name + pskModifier + "_" + string(c.CipherSuite.Name())
	hs.ss.initializeSymmetric([]byte(protocolName))
	hs.ss.mixHash(c.Prologue)
	if err := hs.mixPreMessages(c.Pattern.InitiatorPreMessages, c.Initiator); err != nil {
		return nil, err
	}
	if err := hs.mixPreMessages(c.Pattern.ResponderPreMessages, !c.Initiator); err != nil {
		return nil, err
	}
	log.WithFields(logger.Fields{
		"protocol":  protocolName,
		"initiator": c.Initiator,
	}).Debug("Handshake state initialized")
	return hs, nil
}

// mixPreMessages hashes the statically-known public keys the pattern assumes
// each party holds before the first message.
func (s *HandshakeState) mixPreMessages(pre []MessagePattern, local bool) error {
	for _, m := range pre {
		var pub []byte
		switch {
		case local && m == MessagePatternS:
			pub = s.s.Public
		case local && m == MessagePatternE:
			pub = s.e.Public
		case !local && m == MessagePatternS:
			pub = s.rs
		case !local && m == MessagePatternE:
			pub = s.re
		}
		if len(pub) == 0 {
			return ErrMissingStaticKey
		}
		s.ss.mixHash(pub)
	}
	return nil
}

// SetPresharedKey supplies the 32-byte preshared key. For pskN placements
// with N >= 2 this may be called after construction, as long as it happens
// before the message carrying the psk token is processed.
func (s *HandshakeState) SetPresharedKey(psk []byte) error {
	if len(psk) != PresharedKeyLen {
		return ErrBadPresharedKey
	}
	if s.psk != nil {
		secureZero(s.psk)
	}
	s.psk = append([]byte(nil), psk...)
	return nil
}

// WriteMessage produces the next handshake message for this party's turn,
// appending it to out: token-derived key material first, then the encrypted
// payload. It fails with ErrOutOfOrder when it is the peer's turn, and
// ErrPatternExhausted once the pattern has no messages left. Any failure is
// terminal for this HandshakeState.
func (s *HandshakeState) WriteMessage(out, payload []byte) ([]byte, error) {
	if err := s.checkTurn(true); err != nil {
		return nil, err
	}
	if len(payload) > MaxMsgLen {
		return nil, s.fail(ErrMessageTooLong)
	}

	for _, token := range s.messagePatterns[s.msgIdx] {
		var err error
		out, err = s.writeToken(token, out)
		if err != nil {
			return nil, s.fail(err)
		}
	}
	out, err := s.ss.encryptAndHash(out, payload)
	if err != nil {
		return nil, s.fail(err)
	}
	s.advance()
	return out, nil
}

// writeToken emits one pattern token into the outgoing message.
func (s *HandshakeState) writeToken(token MessagePattern, out []byte) ([]byte, error) {
	switch token {
	case MessagePatternE:
		// A fallback pattern may have pinned the ephemeral via the Config;
		// otherwise a fresh one is generated here, never reused.
		if len(s.e.Private) == 0 {
			e, err := s.ss.suite.GenerateKeypair(s.rng)
			if err != nil {
				return nil, err
			}
			s.e = e
		}
		out = append(out, s.e.Public...)
		s.ss.mixHash(s.e.Public)
		if s.willPsk {
			s.ss.mixKey(s.e.Public)
		}
		return out, nil
	case MessagePatternS:
		if len(s.s.Public) == 0 {
			return nil, ErrMissingStaticKey
		}
		return s.ss.encryptAndHash(out, s.s.Public)
	case MessagePatternPSK:
		if len(s.psk) == 0 {
			return nil, ErrBadPresharedKey
		}
		s.ss.mixKeyAndHash(s.psk)
		return out, nil
	default:
		return out, s.mixDH(token)
	}
}

// ReadMessage consumes the peer's next handshake message, appending the
// decrypted payload to out. Authentication failures and malformed public
// keys are terminal: the state transitions to failed and a fresh
// HandshakeState is required to retry the connection.
func (s *HandshakeState) ReadMessage(out, message []byte) ([]byte, error) {
	if err := s.checkTurn(false); err != nil {
		return nil, err
	}
	if len(message) > MaxMsgLen {
		return nil, s.fail(ErrMessageTooLong)
	}

	for _, token := range s.messagePatterns[s.msgIdx] {
		var err error
		message, err = s.readToken(token, message)
		if err != nil {
			return nil, s.fail(err)
		}
	}
	out, err := s.ss.decryptAndHash(out, message)
	if err != nil {
		return nil, s.fail(err)
	}
	s.advance()
	return out, nil
}

// readToken consumes one pattern token from the incoming message and
// returns the remainder.
func (s *HandshakeState) readToken(token MessagePattern, message []byte) ([]byte, error) {
	switch token {
	case MessagePatternE:
		dhLen := s.ss.suite.DHLen()
		if len(message) < dhLen {
			return nil, ErrShortMessage
		}
		s.re = append(s.re[:0], message[:dhLen]...)
		s.ss.mixHash(s.re)
		if s.willPsk {
			s.ss.mixKey(s.re)
		}
		return message[dhLen:], nil
	case MessagePatternS:
		expected := s.ss.suite.DHLen()
		if s.ss.hasKey {
			expected += TagLen
		}
		if len(message) < expected {
			return nil, ErrShortMessage
		}
		if len(s.rs) > 0 {
			return nil, oops.Errorf("noise: remote static key already known")
		}
		rs, err := s.ss.decryptAndHash(nil, message[:expected])
		if err != nil {
			return nil, err
		}
		s.rs = rs
		return message[expected:], nil
	case MessagePatternPSK:
		if len(s.psk) == 0 {
			return nil, ErrBadPresharedKey
		}
		s.ss.mixKeyAndHash(s.psk)
		return message, nil
	default:
		return message, s.mixDH(token)
	}
}

// mixDH performs the Diffie-Hellman operation a dh token names and mixes
// the shared secret into the chaining key. Which local key pairs with which
// remote key depends on the token and this party's role.
func (s *HandshakeState) mixDH(token MessagePattern) error {
	var local DHKey
	var remote []byte
	switch token {
	case MessagePatternDHEE:
		local, remote = s.e, s.re
	case MessagePatternDHSS:
		local, remote = s.s, s.rs
	case MessagePatternDHES:
		if s.initiator {
			local, remote = s.e, s.rs
		} else {
			local, remote = s.s, s.re
		}
	case MessagePatternDHSE:
		if s.initiator {
			local, remote = s.s, s.re
		} else {
			local, remote = s.e, s.rs
		}
	default:
		return oops.Errorf("noise: unsupported pattern token %v", token)
	}
	if len(local.Private) == 0 {
		return ErrMissingStaticKey
	}
	dh, err := s.ss.suite.DH(local.Private, remote)
	if err != nil {
		return err
	}
	s.ss.mixKey(dh)
	secureZero(dh)
	return nil
}

// checkTurn guards WriteMessage and ReadMessage entry.
func (s *HandshakeState) checkTurn(write bool) error {
	switch s.status {
	case statusFailed, statusFinalized:
		return ErrHandshakeFailed
	case statusComplete:
		return ErrPatternExhausted
	}
	if s.shouldWrite != write {
		return ErrOutOfOrder
	}
	return nil
}

// advance moves the cursor past the message just processed.
func (s *HandshakeState) advance() {
	s.shouldWrite = !s.shouldWrite
	s.msgIdx++
	if s.msgIdx >= len(s.messagePatterns) {
		s.status = statusComplete
		log.WithField("messages", s.msgIdx).Debug("Handshake pattern complete")
	}
}

// fail transitions the machine into its terminal failed state and wipes all
// key material the handshake owns. The original error propagates to the
// caller; every later call observes ErrHandshakeFailed.
func (s *HandshakeState) fail(err error) error {
	s.status = statusFailed
	s.ss.destroy()
	s.e.Zero()
	secureZero(s.psk)
	log.WithError(err).Debug("Handshake failed")
	return err
}

// Finalize splits the completed handshake into the two directional
// transport CipherStates: send encrypts traffic to the peer, recv decrypts
// traffic from it. It fails with ErrNotReady until every pattern message
// has been exchanged, and invalidates the HandshakeState on success, so it
// can be called at most once.
func (s *HandshakeState) Finalize() (send, recv *CipherState, err error) {
	switch s.status {
	case statusFailed, statusFinalized:
		return nil, nil, ErrHandshakeFailed
	case statusInProgress:
		return nil, nil, ErrNotReady
	}
	c1, c2 := s.ss.split()
	s.status = statusFinalized
	s.e.Zero()
	secureZero(s.psk)
	if s.initiator {
		send, recv = c1, c2
	} else {
		send, recv = c2, c1
	}
	log.Debug("Handshake finalized into transport cipher states")
	return send, recv, nil
}

// ChannelBinding returns a value that uniquely identifies the session, the
// final chaining hash. It is only meaningful once the handshake is complete.
func (s *HandshakeState) ChannelBinding() []byte {
	return s.ss.h
}

// PeerStatic returns the remote party's static public key, once a message
// carrying it has been read or it was configured as a pre-message.
func (s *HandshakeState) PeerStatic() []byte {
	return s.rs
}

// PeerEphemeral returns the remote party's ephemeral public key for the
// current handshake.
func (s *HandshakeState) PeerEphemeral() []byte {
	return s.re
}

// LocalEphemeral returns the ephemeral keypair generated for this
// handshake.
func (s *HandshakeState) LocalEphemeral() DHKey {
	return s.e
}

// MessageIndex returns the number of pattern messages processed so far.
func (s *HandshakeState) MessageIndex() int {
	return s.msgIdx
}
