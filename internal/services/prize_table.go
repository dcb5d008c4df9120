package services

import (
	"fmt"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
)

// PrizeTable is an immutable, ordered set of weighted prizes.
// The first prize is the fallback when a draw matches nothing.
type PrizeTable struct {
	prizes      []models.Prize
	totalWeight int
}

// NewPrizeTable validates prizes and copies them into a PrizeTable
func NewPrizeTable(prizes []models.Prize) (*PrizeTable, error) {
	if len(prizes) == 0 {
		return nil, fmt.Errorf("%w: no prizes", ErrInvalidPrizeTable)
	}

	table := &PrizeTable{prizes: make([]models.Prize, len(prizes))}
	for i, p := range prizes {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: prize %d has no name", ErrInvalidPrizeTable, i)
		}
		if p.Weight < 0 {
			return nil, fmt.Errorf("%w: prize %q has negative weight %d", ErrInvalidPrizeTable, p.Name, p.Weight)
		}
		table.prizes[i] = p
		table.totalWeight += p.Weight
	}
	return table, nil
}

// Prizes returns a copy of the prizes in draw order
func (t *PrizeTable) Prizes() []models.Prize {
	out := make([]models.Prize, len(t.prizes))
	copy(out, t.prizes)
	return out
}

// TotalWeight is the sum of all weights
func (t *PrizeTable) TotalWeight() int {
	return t.totalWeight
}

// Fallback is the prize awarded when the walk exhausts the table
func (t *PrizeTable) Fallback() string {
	return t.prizes[0].Name
}

// Draw picks a prize. rnd must return values in [0, 1).
//
// The value rnd()*TotalWeight is walked through the prizes in order, subtracting each weight,
// and the first prize whose weight exceeds what remains wins. A zero-weight prize can never win.
func (t *PrizeTable) Draw(rnd func() float64) string {
	if t.totalWeight == 0 {
		return t.Fallback()
	}

	r := rnd() * float64(t.totalWeight)
	for _, p := range t.prizes {
		if r < float64(p.Weight) {
			return p.Name
		}
		r -= float64(p.Weight)
	}
	return t.Fallback()
}
