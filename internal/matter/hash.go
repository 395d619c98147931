package matter

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"sort"

	"github.com/kherring/matterlab/internal/shape"
)

// Floats are quantized before hashing so that values within the equality
// tolerance almost always land on the same hash. The bucket size is far
// coarser than the tolerance, so only values straddling a bucket boundary
// hash apart; Equal never relies on hash agreement, so a straddle can only
// merge hashes, never report equal nodes as different.

const (
	hashTagMaterial  = 0x4d // 'M'
	hashTagComposite = 0x43 // 'C'

	hashQuantum = 1e-6
)

type hasher struct {
	h   hash.Hash64
	buf [8]byte
}

func newHasher(tag byte) *hasher {
	w := &hasher{h: fnv.New64a()}
	w.h.Write([]byte{tag})
	return w
}

func (w *hasher) float(v float64) {
	q := math.Round(v / hashQuantum)
	binary.BigEndian.PutUint64(w.buf[:], math.Float64bits(q))
	w.h.Write(w.buf[:])
}

func (w *hasher) boolean(v bool) {
	if v {
		w.h.Write([]byte{1})
	} else {
		w.h.Write([]byte{0})
	}
}

func (w *hasher) str(s string) {
	w.h.Write([]byte(s))
	w.h.Write([]byte{0})
}

func (w *hasher) uint(v uint64) {
	binary.BigEndian.PutUint64(w.buf[:], v)
	w.h.Write(w.buf[:])
}

func (w *hasher) shape(sh shape.Shape) {
	p := sh.Position()
	w.float(p.X)
	w.float(p.Y)
	w.float(p.Z)
	r := sh.Rotation()
	w.float(r.Real)
	w.float(r.Imag)
	w.float(r.Jmag)
	w.float(r.Kmag)
	w.float(sh.Volume())
}

// Hash returns a structural hash of the material.
func (m *Material) Hash() uint64 {
	w := newHasher(hashTagMaterial)
	w.shape(m.shape)
	w.boolean(m.hasMass)
	w.float(m.mass)
	w.float(m.density)
	w.boolean(m.hasTemp)
	w.float(m.temperature)

	ids := make([]string, 0, len(m.constituents))
	byID := make(map[string]float64, len(m.constituents))
	for s, p := range m.constituents {
		ids = append(ids, s.ID)
		byID[s.ID] = p
	}
	sort.Strings(ids)
	for _, id := range ids {
		w.str(id)
		w.float(byID[id])
	}
	return w.h.Sum64()
}

// Hash returns a structural hash of the composite. Component hashes are
// folded in sorted order so that hashing is order-insensitive, matching
// Equal.
func (c *Composite) Hash() uint64 {
	w := newHasher(hashTagComposite)
	w.shape(c.shape)
	w.boolean(c.hasMass)
	w.float(c.mass)
	w.boolean(c.hasDensity)
	w.float(c.density)
	w.boolean(c.hasTemp)
	w.float(c.temperature)

	hashes := make([]uint64, len(c.components))
	for i, n := range c.components {
		hashes[i] = n.Hash()
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	for _, h := range hashes {
		w.uint(h)
	}
	return w.h.Sum64()
}
