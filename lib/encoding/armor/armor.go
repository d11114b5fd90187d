// Package armor implements PEM-style text armor for cyphernet key
// material, so keys survive copy-paste, configuration files, and other
// text-only channels.
package armor

import (
	"encoding/pem"

	"github.com/samber/oops"
)

// Block types.
const (
	PrivateKeyType = "CYPHERNET PRIVATE KEY"
	PublicKeyType  = "CYPHERNET PUBLIC KEY"
)

// AlgorithmHeader is the PEM header naming the key's algorithm, for example
// "25519".
const AlgorithmHeader = "Algorithm"

var (
	ErrNoBlock       = oops.Errorf("armor: no PEM block found")
	ErrWrongType     = oops.Errorf("armor: unexpected PEM block type")
	ErrTrailingBytes = oops.Errorf("armor: trailing data after PEM block")
)

// Encode renders key bytes as a PEM block of the given type, recording the
// algorithm name in the block headers.
func Encode(blockType, algorithm string, key []byte) []byte {
	block := &pem.Block{
		Type:  blockType,
		Bytes: key,
	}
	if algorithm != "" {
		block.Headers = map[string]string{AlgorithmHeader: algorithm}
	}
	return pem.EncodeToMemory(block)
}

// Decode parses a PEM block of the expected type and returns the algorithm
// header and key bytes. Data after the first block is rejected.
func Decode(blockType string, data []byte) (algorithm string, key []byte, err error) {
	block, rest := pem.Decode(data)
	if block == nil {
		return "", nil, ErrNoBlock
	}
	if len(rest) > 0 {
		return "", nil, ErrTrailingBytes
	}
	if block.Type != blockType {
		return "", nil, oops.Errorf("armor: expected block type %q, got %q: %w", blockType, block.Type, ErrWrongType)
	}
	return block.Headers[AlgorithmHeader], block.Bytes, nil
}
