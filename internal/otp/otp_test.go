package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type seqSource struct {
	vals []int
	idx  int
}

func (s *seqSource) IntN(int) int {
	v := s.vals[s.idx%len(s.vals)]
	s.idx++
	return v
}

func TestGenerateWellFormed(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 200; i++ {
		code := g.Generate()
		assert.True(t, WellFormed(code), "code %q", code)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewGeneratorWithSource(&seqSource{vals: []int{4, 8, 2, 9, 1, 3}})
	assert.Equal(t, "482913", g.Generate())
}

func TestWellFormed(t *testing.T) {
	assert.True(t, WellFormed("000000"))
	assert.True(t, WellFormed("482913"))
	assert.False(t, WellFormed(""))
	assert.False(t, WellFormed("12345"))
	assert.False(t, WellFormed("1234567"))
	assert.False(t, WellFormed("12a456"))
	assert.False(t, WellFormed("12 456"))
}
