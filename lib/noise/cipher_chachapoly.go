package noise

import (
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherChaChaPoly is the ChaCha20-Poly1305 AEAD (RFC 8439). The 64-bit
// Noise nonce occupies the last 8 bytes of the 96-bit nonce, little-endian.
var CipherChaChaPoly CipherFunc = cipherChaChaPoly{}

type cipherChaChaPoly struct{}

func (cipherChaChaPoly) CipherName() string { return "ChaChaPoly" }

func (cipherChaChaPoly) Cipher(k [CipherKeyLen]byte) Cipher {
	aead, err := chacha20poly1305.New(k[:])
	if err != nil {
		// Key length is fixed by the array type, so this is unreachable.
		panic(err)
	}
	return &chachaPolyCipher{aead: aead}
}

type chachaPolyCipher struct {
	aead cipher.AEAD
}

func (c *chachaPolyCipher) Encrypt(out []byte, n uint64, ad, plaintext []byte) []byte {
	var nonce [chacha20poly1305.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[4:], n)
	return c.aead.Seal(out, nonce[:], plaintext, ad)
}

func (c *chachaPolyCipher) Decrypt(out []byte, n uint64, ad, ciphertext []byte) ([]byte, error) {
	var nonce [chacha20poly1305.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[4:], n)
	plaintext, err := c.aead.Open(out, nonce[:], ciphertext, ad)
	if err != nil {
		return nil, ErrAuthFailure
	}
	return plaintext, nil
}
