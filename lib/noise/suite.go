package noise

import (
	"crypto/hmac"
	"hash"
	"io"
)

// A DHKey is a keypair used for Diffie-Hellman key agreement. The public key
// is deterministically derivable from the private key under the DH function
// that generated it.
type DHKey struct {
	Private []byte
	Public  []byte
}

// Zero overwrites the private half of the keypair. Callers that own a DHKey
// must call Zero once the key is no longer needed; the handshake engine does
// so for every key it generates itself.
func (k *DHKey) Zero() {
	secureZero(k.Private)
}

// A DHFunc implements Diffie-Hellman key agreement.
type DHFunc interface {
	// GenerateKeypair generates a new keypair using random as a source of
	// entropy.
	GenerateKeypair(random io.Reader) (DHKey, error)

	// DH performs a Diffie-Hellman calculation between the provided private
	// and public keys and returns the shared secret. It returns
	// ErrInvalidPublicKey if pubkey does not decode to a usable curve point.
	// Implementations must be constant-time with respect to privkey.
	DH(privkey, pubkey []byte) ([]byte, error)

	// DHLen is the number of bytes of a public key and of the DH output.
	DHLen() int

	// DHName is the name of the DH function.
	DHName() string
}

// A CipherFunc initializes an AEAD cipher with a key.
type CipherFunc interface {
	// Cipher initializes the algorithm with the provided key and returns a
	// Cipher.
	Cipher(k [CipherKeyLen]byte) Cipher

	// CipherName is the name of the cipher.
	CipherName() string
}

// A Cipher is an AEAD cipher that has been initialized with a key. The
// 64-bit nonce is expanded into the cipher's native nonce per the Noise
// specification's endianness convention for that cipher.
type Cipher interface {
	// Encrypt encrypts plaintext under nonce n, authenticating ad, and
	// appends ciphertext plus tag to out.
	Encrypt(out []byte, n uint64, ad, plaintext []byte) []byte

	// Decrypt authenticates ciphertext and ad under nonce n and appends the
	// plaintext to out. It returns ErrAuthFailure when the tag does not
	// verify, in constant time with respect to the position of the mismatch.
	Decrypt(out []byte, n uint64, ad, ciphertext []byte) ([]byte, error)
}

// A HashFunc implements a cryptographic hash function.
type HashFunc interface {
	// Hash returns a new hash state.
	Hash() hash.Hash

	// HashName is the name of the hash function.
	HashName() string
}

// A CipherSuite is the set of cryptographic primitives driving a Noise
// protocol. Construct one with NewCipherSuite.
type CipherSuite interface {
	DHFunc
	CipherFunc
	HashFunc

	// Name is the suite's portion of the protocol name, for example
	// "25519_ChaChaPoly_BLAKE2s".
	Name() []byte
}

// NewCipherSuite assembles a CipherSuite from a DH function, a cipher, and
// a hash function.
func NewCipherSuite(dh DHFunc, c CipherFunc, h HashFunc) CipherSuite {
	return ciphersuite{
		DHFunc:     dh,
		CipherFunc: c,
		HashFunc:   h,
		name:       []byte(dh.DHName() + "_" + c.CipherName() + "_" + h.HashName()),
	}
}

type ciphersuite struct {
	DHFunc
	CipherFunc
	HashFunc
	name []byte
}

func (s ciphersuite) Name() []byte { return s.name }

// hkdf implements the Noise specification's HKDF: extract with the chaining
// key, then expand into numOutputs digests (1 to 3). Outputs are full hash
// length; callers truncate to CipherKeyLen where a cipher key is needed.
func hkdf(h func() hash.Hash, chainingKey, inputKeyMaterial []byte, numOutputs int) (out1, out2, out3 []byte) {
	if numOutputs < 1 || numOutputs > 3 {
		panic("noise: hkdf needs 1 to 3 outputs")
	}
	tempMAC := hmac.New(h, chainingKey)
	tempMAC.Write(inputKeyMaterial)
	tempKey := tempMAC.Sum(nil)

	mac := hmac.New(h, tempKey)
	mac.Write([]byte{0x01})
	out1 = mac.Sum(nil)
	if numOutputs > 1 {
		mac.Reset()
		mac.Write(out1)
		mac.Write([]byte{0x02})
		out2 = mac.Sum(nil)
	}
	if numOutputs > 2 {
		mac.Reset()
		mac.Write(out2)
		mac.Write([]byte{0x03})
		out3 = mac.Sum(nil)
	}
	secureZero(tempKey)
	return
}

// secureZero overwrites b with zero bytes. Zeroization of key material on
// release is a correctness requirement of this package, not an optimization.
func secureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
