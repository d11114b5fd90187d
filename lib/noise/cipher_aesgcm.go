package noise

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// CipherAESGCM is the AES-256-GCM AEAD. The 64-bit Noise nonce occupies the
// last 8 bytes of the 96-bit nonce, big-endian, per the Noise specification.
var CipherAESGCM CipherFunc = cipherAESGCM{}

type cipherAESGCM struct{}

func (cipherAESGCM) CipherName() string { return "AESGCM" }

func (cipherAESGCM) Cipher(k [CipherKeyLen]byte) Cipher {
	block, err := aes.NewCipher(k[:])
	if err != nil {
		panic(err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		panic(err)
	}
	return &aesGCMCipher{aead: aead}
}

type aesGCMCipher struct {
	aead cipher.AEAD
}

func (c *aesGCMCipher) Encrypt(out []byte, n uint64, ad, plaintext []byte) []byte {
	var nonce [12]byte
	binary.BigEndian.PutUint64(nonce[4:], n)
	return c.aead.Seal(out, nonce[:], plaintext, ad)
}

func (c *aesGCMCipher) Decrypt(out []byte, n uint64, ad, ciphertext []byte) ([]byte, error) {
	var nonce [12]byte
	binary.BigEndian.PutUint64(nonce[4:], n)
	plaintext, err := c.aead.Open(out, nonce[:], ciphertext, ad)
	if err != nil {
		return nil, ErrAuthFailure
	}
	return plaintext, nil
}
