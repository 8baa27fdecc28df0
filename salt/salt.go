// Package salt generates and parses the salt portion of bcrypt hash
// strings, e.g. "$2b$10$N9qo8uLOickgx2ZMRZoMye".
package salt

import (
	"encoding"
	"fmt"

	"github.com/webmafia/bcrypt64"
	"github.com/webmafia/fast"
)

const (
	MinCost     = 4
	MaxCost     = 31
	DefaultCost = 10

	// Size is the number of random bytes in a salt.
	Size = 16

	// EncodedSize is the character count of an encoded salt.
	EncodedSize = 22

	prefixLen = 7 // "$2x$nn$"
	strLen    = prefixLen + EncodedSize
)

// Revision identifies a bcrypt scheme variant ('a', 'b', 'x' or 'y').
type Revision byte

const (
	RevisionA Revision = 'a'
	RevisionB Revision = 'b'
	RevisionX Revision = 'x'
	RevisionY Revision = 'y'
)

func (r Revision) Valid() bool {
	switch r {
	case RevisionA, RevisionB, RevisionX, RevisionY:
		return true
	}

	return false
}

func (r Revision) String() string {
	return string([]byte{'2', byte(r)})
}

var _ encoding.TextAppender = Salt{}

// Salt holds the decoded components of a bcrypt salt string.
type Salt struct {
	Raw      [Size]byte
	Cost     int
	Revision Revision
}

// Parse extracts the salt from s, which may be a bare salt string or a
// full bcrypt hash. Anything after the salt characters is ignored.
func Parse(s string) (Salt, error) {
	if len(s) < strLen {
		return Salt{}, fmt.Errorf("%w: expected at least %d characters, got %d", ErrInvalidSalt, strLen, len(s))
	}

	if s[0] != '$' || s[1] != '2' || s[3] != '$' || s[6] != '$' {
		return Salt{}, fmt.Errorf("%w: %q", ErrInvalidSalt, s[:prefixLen])
	}

	rev := Revision(s[2])

	if !rev.Valid() {
		return Salt{}, fmt.Errorf("%w: %q", ErrInvalidRevision, s[2])
	}

	d1, d2 := s[4]-'0', s[5]-'0'

	if d1 > 9 || d2 > 9 {
		return Salt{}, fmt.Errorf("%w: non-numeric cost %q", ErrInvalidSalt, s[4:6])
	}

	cost := int(d1)*10 + int(d2)

	if err := checkCost(cost); err != nil {
		return Salt{}, err
	}

	salt := Salt{
		Cost:     cost,
		Revision: rev,
	}

	// A malformed character stops the decoder early, so anything short
	// of Size bytes means the salt characters weren't clean.
	raw := bcrypt64.AppendDecode(salt.Raw[:0], fast.StringToBytes(s[prefixLen:strLen]), Size)

	if len(raw) != Size {
		return Salt{}, fmt.Errorf("%w: malformed characters in %q", ErrInvalidSalt, s[prefixLen:strLen])
	}

	return salt, nil
}

// AppendText implements encoding.TextAppender.
func (s Salt) AppendText(dst []byte) ([]byte, error) {
	if !s.Revision.Valid() {
		return dst, fmt.Errorf("%w: %q", ErrInvalidRevision, byte(s.Revision))
	}

	if err := checkCost(s.Cost); err != nil {
		return dst, err
	}

	dst = append(dst, '$', '2', byte(s.Revision), '$', '0'+byte(s.Cost/10), '0'+byte(s.Cost%10), '$')
	return bcrypt64.AppendEncode(dst, s.Raw[:]), nil
}

func (s Salt) String() string {
	b, err := s.AppendText(make([]byte, 0, strLen))

	if err != nil {
		return ""
	}

	return fast.BytesToString(b)
}

func checkCost(cost int) error {
	if cost < MinCost || cost > MaxCost {
		return fmt.Errorf("%w: cost %d is outside %d to %d", ErrCostOutOfRange, cost, MinCost, MaxCost)
	}

	return nil
}
