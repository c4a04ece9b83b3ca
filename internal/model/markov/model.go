package markov

import (
	"github.com/trknhr/cardlog/internal/model/counts"
	"github.com/trknhr/cardlog/internal/model/entity"
)

// RankWeights holds the weight of a history title by its distance from now;
// index 0 is the most recent entry.
var RankWeights = []float64{1.0, 0.8, 0.6, 0.4, 0.2}

// FarWeight applies to every history title past len(RankWeights).
const FarWeight = 0.1

// MarkovModel counts "after title A, title B occurred N times".
type MarkovModel struct {
	Transitions counts.Table[string]
}

func NewMarkovModel() *MarkovModel {
	return &MarkovModel{Transitions: counts.New[string]()}
}

// Learn chains consecutive entries of one chronologically sorted batch.
// Entries without a title are skipped and the chain continues across them.
func (m *MarkovModel) Learn(entries []entity.Entry) {
	prev := ""
	for _, e := range entries {
		if !e.HasTitle() {
			continue
		}
		if prev != "" {
			m.Transitions.Inc(prev, e.Title)
		}
		prev = e.Title
	}
}

// Predict returns the rank-weighted sequence score of every title reachable
// from the history.
func (m *MarkovModel) Predict(ctx entity.EstimationContext) map[string]float64 {
	scores := make(map[string]float64)
	for i, title := range ctx.HistoryTitles {
		w := RankWeight(i + 1)
		for next, count := range m.Transitions[title] {
			scores[next] += float64(count) * w
		}
	}
	return scores
}

// Weight is 1: rank weights are already applied by Predict.
func (m *MarkovModel) Weight() float64 {
	return 1.0
}

// RankWeight returns the fixed weight of rank k (1 = closest).
func RankWeight(k int) float64 {
	if k >= 1 && k <= len(RankWeights) {
		return RankWeights[k-1]
	}
	return FarWeight
}

func (m *MarkovModel) Reset() {
	m.Transitions = counts.New[string]()
}

func (m *MarkovModel) Snapshot() map[string]map[string]int {
	return m.Transitions.Clone()
}
