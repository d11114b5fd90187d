// Package multibase implements utilities for the self-describing multibase
// text encoding used to print keys and identifiers: a one-character prefix
// names the base the remainder is encoded in, so consumers can decode
// without out-of-band knowledge.
package multibase

import (
	mb "github.com/multiformats/go-multibase"
)

// Encoding selects the base of an encoded string.
type Encoding = mb.Encoding

// Bases this package's callers commonly use.
const (
	Base32     = mb.Base32
	Base58BTC  = mb.Base58BTC
	Base64URL  = mb.Base64url
	Base16     = mb.Base16
	DefaultKey = mb.Base58BTC
)

// EncodeToString encodes data under the given base, prefixed with the
// base's code character.
func EncodeToString(base Encoding, data []byte) (string, error) {
	return mb.Encode(base, data)
}

// DecodeString decodes a multibase string, returning the base it was
// encoded under and the raw bytes.
func DecodeString(data string) (Encoding, []byte, error) {
	return mb.Decode(data)
}
