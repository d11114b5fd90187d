package noise

import (
	"crypto/rand"
	"io"

	"github.com/samber/oops"
	"golang.org/x/crypto/curve25519"
)

// DH25519 is the Curve25519 Diffie-Hellman function (X25519, RFC 7748).
var DH25519 DHFunc = dh25519{}

type dh25519 struct{}

func (dh25519) GenerateKeypair(rng io.Reader) (DHKey, error) {
	privkey := make([]byte, curve25519.ScalarSize)
	if rng == nil {
		rng = rand.Reader
	}
	if _, err := io.ReadFull(rng, privkey); err != nil {
		return DHKey{}, oops.Errorf("noise: failed to read entropy for keypair: %w", err)
	}
	pubkey, err := curve25519.X25519(privkey, curve25519.Basepoint)
	if err != nil {
		secureZero(privkey)
		return DHKey{}, oops.Errorf("noise: failed to derive public key: %w", err)
	}
	return DHKey{Private: privkey, Public: pubkey}, nil
}

func (dh25519) DH(privkey, pubkey []byte) ([]byte, error) {
	if len(pubkey) != curve25519.PointSize {
		return nil, ErrInvalidPublicKey
	}
	// X25519 is constant-time in the scalar and rejects low-order points by
	// erroring on an all-zero shared secret.
	shared, err := curve25519.X25519(privkey, pubkey)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return shared, nil
}

func (dh25519) DHLen() int     { return curve25519.PointSize }
func (dh25519) DHName() string { return "25519" }
