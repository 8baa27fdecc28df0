package salt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/webmafia/fast"
	"github.com/webmafia/fast/buffer"
)

type GeneratorOptions struct {
	Cost     int
	Revision Revision
	Rand     io.Reader
}

func (opt *GeneratorOptions) setDefaults() {
	if opt.Cost == 0 {
		opt.Cost = DefaultCost
	}

	if opt.Revision == 0 {
		opt.Revision = RevisionB
	}

	if opt.Rand == nil {
		opt.Rand = rand.Reader
	}
}

// Generator produces salts with a fixed cost and revision. It is safe
// for concurrent use as long as its entropy source is.
type Generator struct {
	opt     GeneratorOptions
	bufPool buffer.Pool
}

func NewGenerator(options ...GeneratorOptions) (*Generator, error) {
	var opt GeneratorOptions

	if len(options) > 0 {
		opt = options[0]
	}

	opt.setDefaults()

	if err := checkCost(opt.Cost); err != nil {
		return nil, err
	}

	if !opt.Revision.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRevision, byte(opt.Revision))
	}

	return &Generator{opt: opt}, nil
}

func (g *Generator) Generate() (Salt, error) {
	salt := Salt{
		Cost:     g.opt.Cost,
		Revision: g.opt.Revision,
	}

	if _, err := io.ReadFull(g.opt.Rand, salt.Raw[:]); err != nil {
		return Salt{}, errors.Join(ErrEntropyFailure, err)
	}

	return salt, nil
}

func (g *Generator) GenerateString() (string, error) {
	salt, err := g.Generate()

	if err != nil {
		return "", err
	}

	buf := g.bufPool.Get()
	defer g.bufPool.Put(buf)

	if buf.B, err = salt.AppendText(buf.B); err != nil {
		return "", err
	}

	// The buffer goes back to the pool, so copy out.
	return string(buf.B), nil
}

// Generate returns a fresh salt string without a Generator. Both cost
// and revision must be explicit.
func Generate(cost int, rev Revision) (string, error) {
	if err := checkCost(cost); err != nil {
		return "", err
	}

	if !rev.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRevision, byte(rev))
	}

	salt := Salt{
		Cost:     cost,
		Revision: rev,
	}

	if _, err := io.ReadFull(rand.Reader, salt.Raw[:]); err != nil {
		return "", errors.Join(ErrEntropyFailure, err)
	}

	b, err := salt.AppendText(make([]byte, 0, strLen))

	if err != nil {
		return "", err
	}

	return fast.BytesToString(b), nil
}
