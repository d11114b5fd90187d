package noise

import (
	"strings"
)

// dhFuncs, cipherFuncs, and hashFuncs index the supported primitives by
// their protocol-name component.
var (
	dhFuncs = map[string]DHFunc{
		"25519": DH25519,
	}
	cipherFuncs = map[string]CipherFunc{
		"ChaChaPoly": CipherChaChaPoly,
		"AESGCM":     CipherAESGCM,
	}
	hashFuncs = map[string]HashFunc{
		"SHA256":  HashSHA256,
		"SHA512":  HashSHA512,
		"BLAKE2s": HashBLAKE2s,
		"BLAKE2b": HashBLAKE2b,
	}
)

// ParseProtocolName resolves a fully-qualified protocol name such as
// "Noise_XXpsk3_25519_ChaChaPoly_BLAKE2s" into its handshake pattern, the
// preshared-key placement (-1 when the name carries no psk modifier), and
// the assembled cipher suite. It fails with ErrUnknownPattern or
// ErrUnknownPrimitive for names outside the supported tables.
func ParseProtocolName(name string) (HandshakePattern, int, CipherSuite, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 5 || parts[0] != "Noise" {
		return HandshakePattern{}, -1, nil, ErrUnknownPattern
	}
	pattern, placement, err := LookupPattern(parts[1])
	if err != nil {
		return HandshakePattern{}, -1, nil, err
	}
	dh, ok := dhFuncs[parts[2]]
	if !ok {
		return HandshakePattern{}, -1, nil, ErrUnknownPrimitive
	}
	cipher, ok := cipherFuncs[parts[3]]
	if !ok {
		return HandshakePattern{}, -1, nil, ErrUnknownPrimitive
	}
	hash, ok := hashFuncs[parts[4]]
	if !ok {
		return HandshakePattern{}, -1, nil, ErrUnknownPrimitive
	}
	return pattern, placement, NewCipherSuite(dh, cipher, hash), nil
}
