package core

// Default seed pair used when no seed is configured
const (
	DefaultInitState uint64 = 42
	DefaultInitSeq   uint64 = 54
)

const pcgMultiplier uint64 = 6364136223846793005

// PCG is a permuted congruential generator (PCG32, XSH-RR output).
// Two generators built from the same seed pair produce the same sequence.
// A PCG is not safe for concurrent use; parallel workers need their own
// stream, obtained with a distinct initSeq.
type PCG struct {
	state uint64
	inc   uint64
}

// NewPCG seeds a generator with an initial state and a sequence id
func NewPCG(initState, initSeq uint64) *PCG {
	pcg := &PCG{inc: (initSeq << 1) | 1}
	pcg.Random()
	pcg.state += initState
	pcg.Random()
	return pcg
}

// NewDefaultPCG seeds a generator with DefaultInitState and DefaultInitSeq
func NewDefaultPCG() *PCG {
	return NewPCG(DefaultInitState, DefaultInitSeq)
}

// Random returns a uniformly distributed uint32 and advances the state
func (p *PCG) Random() uint32 {
	oldState := p.state
	p.state = oldState*pcgMultiplier + p.inc

	xorShifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)

	return (xorShifted >> rot) | (xorShifted << ((-rot) & 31))
}

// RandomFloat returns a uniformly distributed float in [0, 1]
func (p *PCG) RandomFloat() float64 {
	return float64(p.Random()) / float64(0xffffffff)
}

// State returns the internal state and increment, mainly for tests
func (p *PCG) State() (state, inc uint64) {
	return p.state, p.inc
}
