// Package counts holds the nested "key -> title -> occurrences" tables the
// suggestion models learn into.
package counts

// Table counts titles per key. Counts only grow until the table is replaced.
type Table[K comparable] map[K]map[string]int

func New[K comparable]() Table[K] {
	return make(Table[K])
}

func (t Table[K]) Inc(key K, title string) {
	if _, ok := t[key]; !ok {
		t[key] = make(map[string]int)
	}
	t[key][title]++
}

// Clone returns a deep copy as a plain map.
func (t Table[K]) Clone() map[K]map[string]int {
	dst := make(map[K]map[string]int, len(t))
	for key, inner := range t {
		c := make(map[string]int, len(inner))
		for title, n := range inner {
			c[title] = n
		}
		dst[key] = c
	}
	return dst
}

// Scores returns the raw count of every title under key.
func (t Table[K]) Scores(key K) map[string]float64 {
	scores := make(map[string]float64)
	for title, n := range t[key] {
		scores[title] = float64(n)
	}
	return scores
}
