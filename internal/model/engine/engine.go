package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trknhr/cardlog/internal/logger"
	"github.com/trknhr/cardlog/internal/model/entity"
	"github.com/trknhr/cardlog/internal/model/locality"
	"github.com/trknhr/cardlog/internal/model/markov"
	"github.com/trknhr/cardlog/internal/model/timeslot"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultHistoryWindow = 3000
	DefaultLimit         = 5

	// ReplayTimeout bounds one shared history fetch, independent of the
	// callers waiting on it.
	ReplayTimeout = 3 * time.Minute
)

var ErrNoSource = errors.New("engine has no history source")

// HistorySource supplies past entries for Bootstrap.
type HistorySource interface {
	RecentEligibleEntries(ctx context.Context, limit int, excluded []entity.Kind) ([]entity.Entry, error)
}

// signal binds a model to the breakdown field its weighted score lands in.
type signal struct {
	model entity.SignalModel
	field func(*entity.Breakdown) *float64
}

// Engine holds the transition, time-of-day and location tables and fuses
// them into ranked title candidates. It is safe for concurrent use.
type Engine struct {
	mu          sync.RWMutex
	transitions *markov.MarkovModel
	times       *timeslot.TimeModel
	places      *locality.LocationModel
	signals     []signal

	// replayed holds IDs counted by the latest replay that no incremental
	// Learn has seen yet.
	replayed map[uuid.UUID]struct{}

	source   HistorySource
	window   int
	excluded []entity.Kind
	limit    int

	boot singleflight.Group
}

type Option func(*Engine)

func WithHistoryWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.window = n
		}
	}
}

func WithExcludedKinds(kinds ...entity.Kind) Option {
	return func(e *Engine) {
		e.excluded = append([]entity.Kind(nil), kinds...)
	}
}

func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

func New(source HistorySource, opts ...Option) *Engine {
	e := &Engine{
		transitions: markov.NewMarkovModel(),
		times:       timeslot.NewTimeModel(),
		places:      locality.NewLocationModel(),
		replayed:    make(map[uuid.UUID]struct{}),
		source:      source,
		window:      DefaultHistoryWindow,
		excluded:    append([]entity.Kind(nil), entity.StructuralKinds...),
		limit:       DefaultLimit,
	}
	e.signals = []signal{
		{e.transitions, func(b *entity.Breakdown) *float64 { return &b.Seq }},
		{e.times, func(b *entity.Breakdown) *float64 { return &b.Time }},
		{e.places, func(b *entity.Breakdown) *float64 { return &b.Loc }},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Learn folds one batch into the tables. The batch is sorted chronologically
// on its own and never chained to earlier batches. Entries the latest replay
// already counted are skipped once.
func (e *Engine) Learn(entries []entity.Entry) {
	batch := prepare(entries)
	if len(batch) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fresh := batch[:0]
	for _, en := range batch {
		if _, ok := e.replayed[en.ID]; ok {
			delete(e.replayed, en.ID)
			continue
		}
		fresh = append(fresh, en)
	}
	if len(fresh) > 0 {
		e.learnLocked(fresh)
	}
}

func (e *Engine) learnLocked(batch []entity.Entry) {
	for _, s := range e.signals {
		s.model.Learn(batch)
	}
	logger.Debug("learned %d entries", len(batch))
}

// prepare returns a chronological copy with untitled entries removed.
func prepare(entries []entity.Entry) []entity.Entry {
	batch := make([]entity.Entry, 0, len(entries))
	for _, en := range entries {
		if en.HasTitle() {
			batch = append(batch, en)
		}
	}
	entity.SortChronological(batch)
	return batch
}

// Estimate ranks every known title for the given context and returns at most
// the configured limit. It never fails; an untrained engine yields an empty slice.
func (e *Engine) Estimate(ctx entity.EstimationContext) []entity.Candidate {
	breakdowns := make(map[string]*entity.Breakdown)
	get := func(title string) *entity.Breakdown {
		b, ok := breakdowns[title]
		if !ok {
			b = &entity.Breakdown{}
			breakdowns[title] = b
		}
		return b
	}

	e.mu.RLock()
	for _, s := range e.signals {
		w := s.model.Weight()
		for title, score := range s.model.Predict(ctx) {
			*s.field(get(title)) += score * w
		}
	}
	e.mu.RUnlock()

	ranked := make([]entity.Candidate, 0, len(breakdowns))
	for title, b := range breakdowns {
		ranked = append(ranked, entity.Candidate{
			Title:     title,
			Score:     b.Total(),
			Breakdown: *b,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Title < ranked[j].Title
	})

	if len(ranked) > e.limit {
		ranked = ranked[:e.limit]
	}
	return ranked
}

// Bootstrap replays the most recent history window from the source on top of
// what is already learned. The write lock is held for the whole fetch; on a
// fetch error nothing is learned. Concurrent calls share one fetch.
func (e *Engine) Bootstrap(ctx context.Context) (int, error) {
	return e.replay(ctx, "bootstrap", false)
}

// Rebuild is Bootstrap on cleared tables: the replayed history replaces
// everything learned so far. On a fetch error the tables are left as they were.
func (e *Engine) Rebuild(ctx context.Context) (int, error) {
	return e.replay(ctx, "rebuild", true)
}

// replay runs one shared fetch per key. The fetch is detached from ctx so a
// caller that gives up does not fail the others waiting on the same call.
func (e *Engine) replay(ctx context.Context, key string, fresh bool) (int, error) {
	if e.source == nil {
		return 0, ErrNoSource
	}

	ch := e.boot.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ReplayTimeout)
		defer cancel()

		e.mu.Lock()
		defer e.mu.Unlock()

		entries, err := e.source.RecentEligibleEntries(fetchCtx, e.window, e.excluded)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch history: %w", err)
		}
		batch := prepare(entries)
		if fresh {
			e.resetLocked()
		}
		if len(batch) > 0 {
			e.learnLocked(batch)
		}
		for _, en := range batch {
			if en.ID != uuid.Nil {
				e.replayed[en.ID] = struct{}{}
			}
		}
		logger.Info("%s learned %d of %d entries", key, len(batch), len(entries))
		return len(entries), nil
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		if res.Shared {
			logger.Debug("%s call coalesced", key)
		}
		return res.Val.(int), nil
	}
}

func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	for _, s := range e.signals {
		s.model.Reset()
	}
	e.replayed = make(map[uuid.UUID]struct{})
}

func (e *Engine) Inspect() entity.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return entity.Snapshot{
		Transition: e.transitions.Snapshot(),
		Time:       e.times.Snapshot(),
		Location:   e.places.Snapshot(),
	}
}

func (e *Engine) Stats() entity.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	titles := make(map[string]struct{})
	var st entity.Stats
	for from, next := range e.transitions.Transitions {
		titles[from] = struct{}{}
		for to := range next {
			titles[to] = struct{}{}
			st.Transitions++
		}
	}
	for _, counts := range e.times.Slots {
		for title := range counts {
			titles[title] = struct{}{}
		}
	}
	st.Hours = len(e.times.Slots)
	st.GeoBuckets = len(e.places.Places)
	st.Titles = len(titles)
	return st
}
