// Package bcrypt64 implements the base64 variant used by the bcrypt
// password-hashing scheme to serialize salt and hash material.
package bcrypt64

import (
	"errors"

	"github.com/webmafia/fast"
)

// Alphabet maps the values 0-63 to their characters. Both the character set
// and the order differ from MIME base64, and there is no padding.
const Alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const invalid = 0xff

var (
	// ErrInvalidLength is returned by Encode when the requested length is
	// non-positive or exceeds the source.
	ErrInvalidLength = errors.New("invalid input length")

	// ErrInvalidMax is returned by Decode when the maximum output size is
	// non-positive.
	ErrInvalidMax = errors.New("invalid maximum output size")
)

// Precomputed reverse lookup for fast decoding.
var decodeTable [256]byte

func init() {
	for i := range decodeTable {
		decodeTable[i] = invalid
	}

	for i := 0; i < len(Alphabet); i++ {
		decodeTable[Alphabet[i]] = byte(i)
	}
}

// EncodedLen returns the number of characters produced by encoding n bytes.
func EncodedLen(n int) int {
	return (n*4 + 2) / 3
}

// DecodedLen returns the number of bytes fully reconstructable from n
// characters.
func DecodedLen(n int) int {
	return n * 3 / 4
}

// Encode encodes the first n bytes of src. It fails if n is non-positive or
// exceeds len(src). The result is always EncodedLen(n) characters long;
// unlike standard base64, the tail is cut short instead of padded.
func Encode(src []byte, n int) (string, error) {
	if n <= 0 || n > len(src) {
		return "", ErrInvalidLength
	}

	return fast.BytesToString(AppendEncode(make([]byte, 0, EncodedLen(n)), src[:n])), nil
}

// AppendEncode appends the encoding of src to dst and returns the extended
// slice. Unlike Encode it takes no length argument and encodes all of src.
func AppendEncode(dst, src []byte) []byte {
	for len(src) >= 3 {
		dst = append(dst,
			Alphabet[src[0]>>2],
			Alphabet[(src[0]&0x03)<<4|src[1]>>4],
			Alphabet[(src[1]&0x0f)<<2|src[2]>>6],
			Alphabet[src[2]&0x3f],
		)
		src = src[3:]
	}

	// 1 or 2 trailing bytes still emit their full 6-bit slices: 2 characters
	// for a single byte, 3 for a pair.
	switch len(src) {
	case 1:
		dst = append(dst,
			Alphabet[src[0]>>2],
			Alphabet[(src[0]&0x03)<<4],
		)
	case 2:
		dst = append(dst,
			Alphabet[src[0]>>2],
			Alphabet[(src[0]&0x03)<<4|src[1]>>4],
			Alphabet[(src[1]&0x0f)<<2],
		)
	}

	return dst
}

// Decode decodes up to max bytes from s. It fails if max is non-positive.
//
// The returned buffer is always exactly max bytes long. Decoding stops at the
// first character outside the alphabet, or when s cannot supply another full
// byte; whatever could not be reconstructed by then stays zero. Malformed
// input is therefore never an error, only a shorter meaningful prefix. Input
// beyond what is needed for max bytes is ignored.
func Decode(s string, max int) ([]byte, error) {
	if max <= 0 {
		return nil, ErrInvalidMax
	}

	buf := make([]byte, max)

	// AppendDecode never grows past max, so it fills buf in place; whatever
	// it could not reconstruct stays zero.
	AppendDecode(buf[:0], fast.StringToBytes(s), max)

	return buf, nil
}

// AppendDecode appends up to max decoded bytes of src to dst and returns the
// extended slice. Unlike Decode, the result holds only the bytes that were
// actually reconstructed from valid characters.
func AppendDecode(dst, src []byte, max int) []byte {
	n := 0

	for n < max && len(src) >= 2 {
		c1 := decodeTable[src[0]]
		c2 := decodeTable[src[1]]

		if c1 == invalid || c2 == invalid {
			break
		}

		dst = append(dst, c1<<2|(c2&0x30)>>4)
		n++

		if n >= max || len(src) < 3 {
			break
		}

		c3 := decodeTable[src[2]]

		if c3 == invalid {
			break
		}

		dst = append(dst, (c2&0x0f)<<4|(c3&0x3c)>>2)
		n++

		if n >= max || len(src) < 4 {
			break
		}

		c4 := decodeTable[src[3]]

		if c4 == invalid {
			break
		}

		dst = append(dst, (c3&0x03)<<6|c4)
		n++

		src = src[4:]
	}

	return dst
}
