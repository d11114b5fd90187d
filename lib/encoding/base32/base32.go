// Package base32 implements utilities for encoding and decoding text using
// the lowercase RFC 4648 alphabet shared by I2P and Tor addressing.
package base32

import (
	b32 "encoding/base32"
)

// EncodeAlphabet is the base32 alphabet used throughout I2P and Tor:
// RFC 4648 using lowercase characters.
const EncodeAlphabet = "abcdefghijklmnopqrstuvwxyz234567"

// Encoding is the padded lowercase base32 encoding.
var Encoding *b32.Encoding = b32.NewEncoding(EncodeAlphabet)

// AddrEncoding is the unpadded variant used for address text forms
// (".onion", ".b32.i2p"), which never carry padding characters.
var AddrEncoding *b32.Encoding = Encoding.WithPadding(b32.NoPadding)

// EncodeToString encodes []byte to a padded base32 string.
func EncodeToString(data []byte) string {
	return Encoding.EncodeToString(data)
}

// DecodeString decodes a padded base32 string to []byte.
func DecodeString(data string) ([]byte, error) {
	return Encoding.DecodeString(data)
}

// EncodeAddr encodes []byte to the unpadded address form.
func EncodeAddr(data []byte) string {
	return AddrEncoding.EncodeToString(data)
}

// DecodeAddr decodes an unpadded address string to []byte.
func DecodeAddr(data string) ([]byte, error) {
	return AddrEncoding.DecodeString(data)
}
