package noise

// A symmetricState is the key-mixing ledger of an in-flight handshake: the
// chaining key and chaining hash accumulate every public key, DH output, and
// ciphertext exchanged, and the optional temporary cipher key encrypts
// handshake payloads once any key material has been mixed. It is created
// when the handshake starts and consumed by Split when it completes.
type symmetricState struct {
	suite  CipherSuite
	cipher *CipherState
	hasKey bool
	ck     []byte // chaining key
	h      []byte // chaining hash
}

// initializeSymmetric seeds the ledger from the full protocol name, for
// example "Noise_XX_25519_ChaChaPoly_SHA256". Names no longer than the hash
// length are zero-padded instead of hashed, per the Noise specification.
func (s *symmetricState) initializeSymmetric(protocolName []byte) {
	h := s.suite.Hash()
	if len(protocolName) <= h.Size() {
		s.h = make([]byte, h.Size())
		copy(s.h, protocolName)
	} else {
		h.Write(protocolName)
		s.h = h.Sum(nil)
	}
	s.ck = make([]byte, len(s.h))
	copy(s.ck, s.h)
}

// mixKey runs the two-output HKDF over the chaining key and the input,
// replaces the chaining key, and (re)initializes the temporary cipher key
// with a fresh zero nonce.
func (s *symmetricState) mixKey(inputKeyMaterial []byte) {
	ck, temp, _ := hkdf(s.suite.Hash, s.ck, inputKeyMaterial, 2)
	secureZero(s.ck)
	s.ck = ck
	s.cipher = newCipherState(s.suite, temp)
	s.hasKey = true
	secureZero(temp)
}

// mixHash updates the chaining hash with data.
func (s *symmetricState) mixHash(data []byte) {
	h := s.suite.Hash()
	h.Write(s.h)
	h.Write(data)
	s.h = h.Sum(s.h[:0])
}

// mixKeyAndHash is the three-output HKDF variant used for psk tokens: it
// updates the chaining key, mixes the second output into the chaining hash,
// and reinitializes the temporary cipher key from the third.
func (s *symmetricState) mixKeyAndHash(data []byte) {
	ck, tempH, tempK := hkdf(s.suite.Hash, s.ck, data, 3)
	secureZero(s.ck)
	s.ck = ck
	s.mixHash(tempH)
	s.cipher = newCipherState(s.suite, tempK)
	s.hasKey = true
	secureZero(tempH)
	secureZero(tempK)
}

// encryptAndHash encrypts plaintext with the chaining hash as associated
// data and mixes the ciphertext into the hash. Before any key material has
// been mixed it degrades to a passthrough that only mixes the plaintext.
func (s *symmetricState) encryptAndHash(out, plaintext []byte) ([]byte, error) {
	if !s.hasKey {
		s.mixHash(plaintext)
		return append(out, plaintext...), nil
	}
	ciphertext, err := s.cipher.Encrypt(out, s.h, plaintext)
	if err != nil {
		return nil, err
	}
	s.mixHash(ciphertext[len(out):])
	return ciphertext, nil
}

// decryptAndHash is the inverse of encryptAndHash: the incoming ciphertext
// is authenticated against the current chaining hash, then mixed into it.
func (s *symmetricState) decryptAndHash(out, ciphertext []byte) ([]byte, error) {
	if !s.hasKey {
		s.mixHash(ciphertext)
		return append(out, ciphertext...), nil
	}
	plaintext, err := s.cipher.Decrypt(out, s.h, ciphertext)
	if err != nil {
		return nil, err
	}
	s.mixHash(ciphertext)
	return plaintext, nil
}

// split derives the two transport cipher states from the chaining key and
// destroys the ledger; it is called exactly once, at pattern completion.
// The first state keys the initiator-to-responder direction.
func (s *symmetricState) split() (*CipherState, *CipherState) {
	temp1, temp2, _ := hkdf(s.suite.Hash, s.ck, nil, 2)
	c1 := newCipherState(s.suite, temp1)
	c2 := newCipherState(s.suite, temp2)
	secureZero(temp1)
	secureZero(temp2)
	s.destroy()
	return c1, c2
}

// destroy wipes all ledger key material. The chaining hash is retained as
// the session's channel binding value; it is public by construction.
func (s *symmetricState) destroy() {
	secureZero(s.ck)
	if s.cipher != nil {
		s.cipher.Zero()
		s.cipher = nil
	}
	s.hasKey = false
}
