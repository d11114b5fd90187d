package noise

// A CipherState provides authenticated transport encryption in one direction
// after a successful handshake. It holds one symmetric key and a 64-bit send
// nonce counter, and is single-owner: the send-direction state may live in a
// writer context and the recv-direction state in a reader context with no
// synchronization, since they share nothing.
type CipherState struct {
	cf CipherFunc
	c  Cipher
	k  [CipherKeyLen]byte
	n  uint64
}

func newCipherState(cf CipherFunc, key []byte) *CipherState {
	s := &CipherState{cf: cf}
	copy(s.k[:], key[:CipherKeyLen])
	s.c = cf.Cipher(s.k)
	return s
}

// Encrypt encrypts plaintext, authenticating ad, and appends the ciphertext
// and tag to out. The nonce increments by exactly one after each successful
// call, so messages must be decrypted in order. ErrNonceExhausted is
// returned once the counter passes MaxNonce; the counter is never wrapped.
func (s *CipherState) Encrypt(out, ad, plaintext []byte) ([]byte, error) {
	if s.n > MaxNonce {
		return nil, ErrNonceExhausted
	}
	out = s.c.Encrypt(out, s.n, ad, plaintext)
	s.n++
	return out, nil
}

// Decrypt authenticates ciphertext and ad, then appends the plaintext to
// out. The nonce increments only after successful authentication: a failed
// decryption returns ErrAuthFailure and leaves the counter untouched, since
// the sender's framing did not consume a message.
func (s *CipherState) Decrypt(out, ad, ciphertext []byte) ([]byte, error) {
	if s.n > MaxNonce {
		return nil, ErrNonceExhausted
	}
	out, err := s.c.Decrypt(out, s.n, ad, ciphertext)
	if err != nil {
		return nil, err
	}
	s.n++
	return out, nil
}

// Rekey replaces the key with ENCRYPT(k, 2^64-1, empty, zeros[32]) per the
// Noise specification, providing forward secrecy within a long-lived
// transport session. The nonce counter is not reset; callers whose protocol
// resets it must do so explicitly with SetNonce.
func (s *CipherState) Rekey() {
	var zeros [CipherKeyLen]byte
	var out []byte
	out = s.c.Encrypt(out, rekeyNonce, nil, zeros[:])
	copy(s.k[:], out[:CipherKeyLen])
	s.c = s.cf.Cipher(s.k)
	secureZero(out)
}

// Nonce returns the current counter value. Callers can watch it to schedule
// a rekey or a fresh handshake before MaxNonce is reached.
func (s *CipherState) Nonce() uint64 {
	return s.n
}

// SetNonce sets the counter. Rolling the counter back re-uses nonces and
// destroys the cipher's security; only use values obtained from Nonce.
func (s *CipherState) SetNonce(n uint64) {
	s.n = n
}

// Zero wipes the key material. The CipherState is unusable afterwards.
func (s *CipherState) Zero() {
	secureZero(s.k[:])
	s.c = nil
}
