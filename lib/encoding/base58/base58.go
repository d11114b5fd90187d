// Package base58 implements utilities for encoding and decoding text using
// the Bitcoin base58 alphabet, the encoding Nym recipients are written in.
package base58

import (
	b58 "github.com/mr-tron/base58"
)

// EncodeToString encodes []byte to a base58 string.
func EncodeToString(data []byte) string {
	return b58.Encode(data)
}

// DecodeString decodes a base58 string to []byte.
func DecodeString(data string) ([]byte, error) {
	return b58.Decode(data)
}
