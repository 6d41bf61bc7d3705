package simulation

import (
	"math/rand/v2"

	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"gonum.org/v1/gonum/stat/distuv"
)

type uniformSampler struct {
	src rand.Source
}

var _ interfaces.Sampler = &uniformSampler{}

// NewSampler returns a uniform sampler over a PCG source seeded with seed.
// Two samplers with the same seed produce the same sequence.
//
// A sampler is not safe for concurrent use; give each goroutine its own.
func NewSampler(seed uint64) interfaces.Sampler {
	return &uniformSampler{
		src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

func (s *uniformSampler) Uniform(lo, hi float64) float64 {
	if lo >= hi {
		return lo
	}
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}
