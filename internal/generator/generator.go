// Package generator builds secret codes.
package generator

import (
	"math/rand"
	"time"
)

const digits = "0123456789"

// Generator produces random digit codes.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Code returns length random digits. Leading zeros are kept, so "007" is a valid code.
func (g *Generator) Code(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = digits[g.rnd.Intn(len(digits))]
	}
	return string(buf)
}
