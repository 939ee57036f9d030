package app

import (
	"math/rand/v2"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
)

// CodeGenerator draws room codes uniformly from an inclusive range. It does
// not check the store for collisions; the store's conditional insert is the
// authority, and the service redraws on ErrDuplicateCode.
type CodeGenerator struct {
	min int
	max int
}

// NewCodeGenerator creates a generator for the inclusive range [min, max].
func NewCodeGenerator(min, max int) *CodeGenerator {
	return &CodeGenerator{min: min, max: max}
}

// Next returns a fresh candidate code.
func (g *CodeGenerator) Next() domain.RoomCode {
	return domain.RoomCode(g.min + rand.IntN(g.max-g.min+1))
}
