// Package otp issues the one-time numeric codes used during credential
// recovery.
package otp

import "math/rand/v2"

// CodeLength is the fixed length of every issued code.
const CodeLength = 6

const digits = "0123456789"

// Source yields uniform random indexes below n. Tests swap in a fixed
// sequence; production uses math/rand. The stream is not cryptographically
// hardened; a CSPRNG-backed Source can be substituted without changing the
// contract.
type Source interface {
	IntN(n int) int
}

type mathSource struct{}

func (mathSource) IntN(n int) int { return rand.IntN(n) }

type Generator struct {
	src Source
}

func NewGenerator() *Generator {
	return &Generator{src: mathSource{}}
}

func NewGeneratorWithSource(src Source) *Generator {
	return &Generator{src: src}
}

// Generate returns a CodeLength-character string, each character drawn
// independently and uniformly from the digit alphabet.
func (g *Generator) Generate() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = digits[g.src.IntN(len(digits))]
	}
	return string(b)
}

// WellFormed reports whether code is exactly CodeLength ASCII digits.
func WellFormed(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
