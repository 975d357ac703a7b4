package sampler

// Path-addressed deterministic randomness. Every derivation node's uniform
// draw is a pure function of (seed, child-index path from the root), so two
// grammars sharing an upstream layer make identical draws at identical tree
// paths no matter how traversal is ordered or parallelized. This is the
// property the corpus aligner's cross-cascade alignment rests on, and it is
// why math/rand's sequential state cannot be used here.

const (
	goldenGamma = 0x9e3779b97f4a7c15
	drawSalt    = 0xd1b54a32d192ed03
)

// splitmix64 is the finalizer from Steele, Lea & Flood's SplittableRandom.
func splitmix64(x uint64) uint64 {
	x += goldenGamma
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Stream is the deterministic random stream at one tree position. Streams are
// values: splitting off a child never perturbs the parent.
type Stream struct {
	state uint64
}

// NewStream roots a stream at the given seed.
func NewStream(seed uint64) Stream {
	return Stream{state: splitmix64(seed)}
}

// Child derives the independent stream for the i-th child slot.
func (s Stream) Child(i int) Stream {
	return Stream{state: splitmix64(s.state ^ (uint64(i+1) * goldenGamma))}
}

// Uniform returns this position's draw in [0, 1). Calling it twice on the
// same stream returns the same value; each position has exactly one draw.
func (s Stream) Uniform() float64 {
	return float64(splitmix64(s.state^drawSalt)>>11) / (1 << 53)
}

// SeedForIndex is the documented seed-derivation function f(i) shared by
// every cascade in a parallel-generation call:
//
//	f(i) = splitmix64(base ^ splitmix64(i))
//
// Hashed rather than identity so neighboring sample indices do not produce
// correlated draw sequences. Changing this function changes every generated
// corpus, so it is fixed.
func SeedForIndex(base uint64, index int) uint64 {
	return splitmix64(base ^ splitmix64(uint64(index)))
}
