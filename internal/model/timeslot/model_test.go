package timeslot

import (
	"reflect"
	"testing"
	"time"

	"github.com/trknhr/cardlog/internal/model/entity"
)

func at(hour, min int, title string) entity.Entry {
	return entity.Entry{
		ID:    entity.NewID(time.Date(2024, 2, 3, hour, min, 0, 0, time.Local)),
		Kind:  entity.KindText,
		Title: title,
	}
}

func TestTimeModel_LearnAndPredict(t *testing.T) {
	m := NewTimeModel()
	m.Learn([]entity.Entry{
		at(8, 0, "Breakfast"),
		at(8, 30, "Commute"),
		at(8, 45, "Breakfast"),
		at(12, 0, "Lunch"),
		at(12, 5, ""),
	})

	want := map[int]map[string]int{
		8:  {"Breakfast": 2, "Commute": 1},
		12: {"Lunch": 1},
	}
	if got := m.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots = %#v, want %#v", got, want)
	}

	got := m.Predict(entity.EstimationContext{CurrentHour: 8})
	expected := map[string]float64{"Breakfast": 2, "Commute": 1}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Predict(8) = %#v, want %#v", got, expected)
	}

	if got := m.Predict(entity.EstimationContext{CurrentHour: 3}); len(got) != 0 {
		t.Errorf("Predict(3) = %#v, want empty", got)
	}
}

func TestTimeModel_SnapshotIsACopy(t *testing.T) {
	m := NewTimeModel()
	m.Learn([]entity.Entry{at(9, 0, "Work")})

	snap := m.Snapshot()
	snap[9]["Work"] = 100

	if m.Slots[9]["Work"] != 1 {
		t.Errorf("snapshot mutation leaked into model: %d", m.Slots[9]["Work"])
	}
}
