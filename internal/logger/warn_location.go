package logger

import (
	"sync"
)

var once sync.Once

// WarnNoLocationOnce reports a missing location source a single time per process.
func WarnNoLocationOnce(reason error) {
	once.Do(func() {
		Warn("location unavailable, suggestions will ignore place: %v", reason)
	})
}
