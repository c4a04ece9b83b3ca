package locality

import (
	"github.com/trknhr/cardlog/internal/model/bucket"
	"github.com/trknhr/cardlog/internal/model/counts"
	"github.com/trknhr/cardlog/internal/model/entity"
)

// LocationModel counts titles per rounded geo bucket.
type LocationModel struct {
	Places counts.Table[string]
}

func NewLocationModel() *LocationModel {
	return &LocationModel{Places: counts.New[string]()}
}

// Learn skips entries whose geo string does not resolve to a bucket.
func (m *LocationModel) Learn(entries []entity.Entry) {
	for _, e := range entries {
		if !e.HasTitle() {
			continue
		}
		if key, ok := bucket.GeoKey(e.Geo); ok {
			m.Places.Inc(key, e.Title)
		}
	}
}

func (m *LocationModel) Predict(ctx entity.EstimationContext) map[string]float64 {
	if !ctx.HasGeo {
		return map[string]float64{}
	}
	return m.Places.Scores(ctx.GeoKey)
}

func (m *LocationModel) Weight() float64 {
	return 0.5
}

func (m *LocationModel) Reset() {
	m.Places = counts.New[string]()
}

func (m *LocationModel) Snapshot() map[string]map[string]int {
	return m.Places.Clone()
}
