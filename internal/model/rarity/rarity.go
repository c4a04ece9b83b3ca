// Package rarity scores how worn-out a title is: the first occurrence is 1.0
// and every repeat multiplies the running score by Decay.
package rarity

import (
	"github.com/google/uuid"
	"github.com/trknhr/cardlog/internal/model/entity"
)

const (
	Initial = 1.0
	Decay   = 0.97
)

// Next returns the score of the next occurrence of a title.
func Next(prev float64, seen bool) float64 {
	if !seen {
		return Initial
	}
	return prev * Decay
}

// Scores walks entries chronologically and returns the score each entry had
// when it was recorded. Entries without a title are omitted.
func Scores(entries []entity.Entry) map[uuid.UUID]float64 {
	sorted := make([]entity.Entry, len(entries))
	copy(sorted, entries)
	entity.SortChronological(sorted)

	running := make(map[string]float64)
	out := make(map[uuid.UUID]float64, len(sorted))
	for _, e := range sorted {
		if !e.HasTitle() {
			continue
		}
		prev, seen := running[e.Title]
		score := Next(prev, seen)
		running[e.Title] = score
		out[e.ID] = score
	}
	return out
}
