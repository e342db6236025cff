package runtime

import "math"

// hashOffsetBasis and fnvPrime implement the FNV-1a-style mixing every
// generated struct's Hash method folds its fields through (§4.5):
// h = (h XOR part) * fnvPrime, starting from hashOffsetBasis.
const (
	hashOffsetBasis int32 = 16777619
	fnvPrime        int32 = -2128831035 // int32(0x811c9dc5)
)

// NewHash returns the starting accumulator for a field-wise hash fold.
func NewHash() int32 { return hashOffsetBasis }

// CombineHash folds part into the running hash h.
func CombineHash(h, part int32) int32 {
	return (h ^ part) * fnvPrime
}

// BoolHash, Int64Hash, DoubleHash and StringHash give each scalar kind a
// stable int32 contribution for CombineHash.

func BoolHash(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func Int64Hash(v int64) int32 {
	return int32(v ^ (v >> 32))
}

func DoubleHash(v float64) int32 {
	return Int64Hash(int64(math.Float64bits(v)))
}

func StringHash(s string) int32 {
	h := hashOffsetBasis
	for i := 0; i < len(s); i++ {
		h = CombineHash(h, int32(s[i]))
	}
	return h
}

func BinaryHash(b []byte) int32 {
	h := hashOffsetBasis
	for _, c := range b {
		h = CombineHash(h, int32(c))
	}
	return h
}

// HashWith folds elemHash(v) for every element into a single int32, used
// by generated Hash methods for list-typed fields.
func (l List[T]) HashWith(elemHash func(T) int32) int32 {
	h := hashOffsetBasis
	l.Range(func(_ int, v T) bool {
		h = CombineHash(h, elemHash(v))
		return true
	})
	return h
}

// HashWith folds elemHash over every member, used by generated Hash
// methods for set-typed fields.
func (s Set[T]) HashWith(elemHash func(T) int32) int32 {
	h := hashOffsetBasis
	s.Range(func(v T) bool {
		h = CombineHash(h, elemHash(v))
		return true
	})
	return h
}

// HashWith folds keyHash(k) combined with valHash(v) for every entry,
// used by generated Hash methods for map-typed fields.
func (m Map[K, V]) HashWith(keyHash func(K) int32, valHash func(V) int32) int32 {
	h := hashOffsetBasis
	m.Range(func(k K, v V) bool {
		h = CombineHash(h, CombineHash(keyHash(k), valHash(v)))
		return true
	})
	return h
}
