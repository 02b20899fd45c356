package omegalz

const (
	// DefaultMaxGroupBits is the default bound on the length of a single
	// Elias-omega group.
	DefaultMaxGroupBits = 100

	// DefaultMaxOutput is the default bound on the number of symbols a
	// single stream may decode to.
	DefaultMaxOutput = 1 << 24
)

// Options controls decoding.  The zero value is equivalent to
// DefaultOptions().
type Options struct {
	// MaxGroupBits bounds the length of any one Elias-omega group.  Values
	// <= 0 select DefaultMaxGroupBits.
	MaxGroupBits int

	// MaxOutput bounds the length of the decoded text.  A token that would
	// grow the output past it fails instead of being applied.  Values <= 0
	// select DefaultMaxOutput.
	MaxOutput int
}

// DefaultOptions returns the recommended Options.
func DefaultOptions() Options {
	return Options{
		MaxGroupBits: DefaultMaxGroupBits,
		MaxOutput:    DefaultMaxOutput,
	}
}

func (o Options) maxGroupBits() int {
	if o.MaxGroupBits <= 0 {
		return DefaultMaxGroupBits
	}
	return o.MaxGroupBits
}

func (o Options) maxOutput() uint64 {
	if o.MaxOutput <= 0 {
		return DefaultMaxOutput
	}
	return uint64(o.MaxOutput)
}
