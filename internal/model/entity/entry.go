package entity

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCard  Kind = "card"
	KindTime  Kind = "time"
	KindText  Kind = "text"
	KindCheck Kind = "check"
)

// StructuralKinds are never valid titles.
var StructuralKinds = []Kind{KindCard, KindTime}

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCard, KindTime, KindText, KindCheck:
		return k, true
	default:
		return "", false
	}
}

type Entry struct {
	ID       uuid.UUID `json:"id"`
	ParentID uuid.UUID `json:"parent_id"`
	Kind     Kind      `json:"kind"`
	Title    string    `json:"title"`
	Body     string    `json:"body,omitempty"`
	Done     bool      `json:"done,omitempty"`
	Geo      string    `json:"geo,omitempty"`
}

// CreatedAt returns the creation time encoded in the first 48 bits of the ID.
func (e Entry) CreatedAt() time.Time {
	return IDTime(e.ID)
}

// HasTitle reports whether the entry can be learned or suggested.
func (e Entry) HasTitle() bool {
	return strings.TrimSpace(e.Title) != ""
}

// maxIDMillis is the largest timestamp that fits the 48-bit ID prefix.
const maxIDMillis = 1<<48 - 1

var (
	idMu    sync.Mutex
	lastMs  int64
	lastSeq uint16
)

// NewID returns a UUIDv7-layout identifier whose timestamp is t, clamped to
// the range the 48-bit prefix can hold. IDs minted for the same millisecond
// carry an increasing 12-bit sequence, so they sort in creation order.
func NewID(t time.Time) uuid.UUID {
	ms := min(max(t.UnixMilli(), 0), maxIDMillis)

	idMu.Lock()
	var seq uint16
	if ms == lastMs {
		seq = lastSeq + 1
		if seq > 0x0fff {
			// sequence exhausted: borrow the next millisecond
			if ms < maxIDMillis {
				ms++
				seq = 0
			} else {
				seq = 0x0fff
			}
		}
	}
	lastMs, lastSeq = ms, seq
	idMu.Unlock()

	id := uuid.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ms))
	copy(id[0:6], buf[2:8])
	id[6] = 0x70 | byte(seq>>8)
	id[7] = byte(seq)
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

func IDTime(id uuid.UUID) time.Time {
	ms := binary.BigEndian.Uint64(id[0:8]) >> 16
	return time.UnixMilli(int64(ms))
}

// Before orders entries by creation time, then by ID for entries created in
// the same millisecond.
func Before(a, b Entry) bool {
	if ta, tb := a.CreatedAt(), b.CreatedAt(); !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// SortChronological sorts entries oldest first in place.
func SortChronological(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Before(entries[i], entries[j])
	})
}
