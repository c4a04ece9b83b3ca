package entity

// EstimationContext is what the caller knows right now. HistoryTitles is newest first.
type EstimationContext struct {
	HistoryTitles []string `json:"history_titles"`
	CurrentHour   int      `json:"current_hour"`
	GeoKey        string   `json:"geo_key,omitempty"`
	HasGeo        bool     `json:"has_geo"`
}

type Breakdown struct {
	Seq  float64 `json:"seq"`
	Time float64 `json:"time"`
	Loc  float64 `json:"loc"`
}

func (b Breakdown) Total() float64 {
	return b.Seq + b.Time + b.Loc
}

type Candidate struct {
	Title     string    `json:"title"`
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Snapshot is a deep copy of the learned maps.
type Snapshot struct {
	Transition map[string]map[string]int `json:"transition"`
	Time       map[int]map[string]int    `json:"time"`
	Location   map[string]map[string]int `json:"location"`
}

type Stats struct {
	Titles      int `json:"titles"`
	Transitions int `json:"transitions"`
	Hours       int `json:"hours"`
	GeoBuckets  int `json:"geo_buckets"`
}

// SignalModel is one learned signal of the engine. Predict returns unweighted
// scores; the engine multiplies them by Weight before fusing.
type SignalModel interface {
	Learn(entries []Entry)
	Predict(ctx EstimationContext) map[string]float64
	Weight() float64
	Reset()
}
