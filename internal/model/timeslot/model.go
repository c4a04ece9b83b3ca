package timeslot

import (
	"github.com/trknhr/cardlog/internal/model/bucket"
	"github.com/trknhr/cardlog/internal/model/counts"
	"github.com/trknhr/cardlog/internal/model/entity"
)

// TimeModel counts titles per hour of day.
type TimeModel struct {
	Slots counts.Table[int]
}

func NewTimeModel() *TimeModel {
	return &TimeModel{Slots: counts.New[int]()}
}

func (m *TimeModel) Learn(entries []entity.Entry) {
	for _, e := range entries {
		if !e.HasTitle() {
			continue
		}
		m.Slots.Inc(bucket.TimeSlot(e.CreatedAt()), e.Title)
	}
}

func (m *TimeModel) Predict(ctx entity.EstimationContext) map[string]float64 {
	return m.Slots.Scores(ctx.CurrentHour)
}

func (m *TimeModel) Weight() float64 {
	return 0.5
}

func (m *TimeModel) Reset() {
	m.Slots = counts.New[int]()
}

func (m *TimeModel) Snapshot() map[int]map[string]int {
	return m.Slots.Clone()
}
