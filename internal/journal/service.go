// Package journal connects the suggestion engine to the entry store and the
// location provider: it builds the estimation context and learns every save.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trknhr/cardlog/internal/location"
	"github.com/trknhr/cardlog/internal/logger"
	"github.com/trknhr/cardlog/internal/model/bucket"
	"github.com/trknhr/cardlog/internal/model/engine"
	"github.com/trknhr/cardlog/internal/model/entity"
	"github.com/trknhr/cardlog/internal/model/rarity"
	"github.com/trknhr/cardlog/internal/store"
	"golang.org/x/sync/errgroup"
)

const DefaultContextDepth = 5

// maxTitleScan caps how many entries recentTitles reads looking for titles.
const maxTitleScan = 1000

type Service struct {
	store  store.EntryStore
	engine *engine.Engine
	geo    location.Provider

	depth    int
	excluded []entity.Kind
	now      func() time.Time
}

type Option func(*Service)

func WithContextDepth(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.depth = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st store.EntryStore, eng *engine.Engine, geo location.Provider, opts ...Option) *Service {
	if geo == nil {
		geo = location.None
	}
	s := &Service{
		store:    st,
		engine:   eng,
		geo:      geo,
		depth:    DefaultContextDepth,
		excluded: entity.StructuralKinds,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Context gathers the recent titles and the current place concurrently.
func (s *Service) Context(ctx context.Context) (entity.EstimationContext, error) {
	ectx := entity.EstimationContext{CurrentHour: bucket.TimeSlot(s.now())}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		titles, err := s.recentTitles(gctx)
		if err != nil {
			return err
		}
		ectx.HistoryTitles = titles
		return nil
	})

	var (
		geoKey string
		hasGeo bool
	)
	g.Go(func() error {
		raw, ok := s.geo.CurrentGeo(gctx)
		if !ok {
			return nil
		}
		geoKey, hasGeo = bucket.GeoKey(raw)
		if !hasGeo {
			logger.Debug("ignoring unparsable location %q", raw)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return entity.EstimationContext{}, err
	}
	ectx.GeoKey, ectx.HasGeo = geoKey, hasGeo
	return ectx, nil
}

// recentTitles returns up to depth titles, newest first. Untitled entries
// take no rank, so the fetch widens until depth titles are found or the
// history runs out.
func (s *Service) recentTitles(ctx context.Context) ([]string, error) {
	titles := make([]string, 0, s.depth)
	for limit := s.depth; ; limit *= 4 {
		recent, err := s.store.RecentEligibleEntries(ctx, limit, s.excluded)
		if err != nil {
			return nil, fmt.Errorf("failed to load recent entries: %w", err)
		}
		titles = titles[:0]
		for _, e := range recent {
			if e.HasTitle() {
				titles = append(titles, e.Title)
			}
			if len(titles) == s.depth {
				return titles, nil
			}
		}
		if len(recent) < limit || limit >= maxTitleScan {
			return titles, nil
		}
	}
}

func (s *Service) Suggest(ctx context.Context) ([]entity.Candidate, error) {
	ectx, err := s.Context(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Estimate(ectx), nil
}

// Save stores the entry and, only once that succeeded, teaches it to the
// engine unless it is a structural kind. A missing ID is minted from the clock and a missing geo is taken
// from the location provider.
func (s *Service) Save(ctx context.Context, e entity.Entry) (entity.Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = entity.NewID(s.now())
	}
	if e.Geo == "" {
		if geo, ok := s.geo.CurrentGeo(ctx); ok {
			e.Geo = geo
		}
	}

	if err := s.store.SaveEntry(ctx, e); err != nil {
		return entity.Entry{}, err
	}
	if s.eligible(e.Kind) {
		s.engine.Learn([]entity.Entry{e})
	}
	return e, nil
}

func (s *Service) eligible(k entity.Kind) bool {
	for _, ex := range s.excluded {
		if k == ex {
			return false
		}
	}
	return true
}

func (s *Service) Recent(ctx context.Context, limit int) ([]entity.Entry, error) {
	return s.store.RecentEntries(ctx, limit)
}

// RecentWithRarity returns the limit newest entries together with rarity
// scores computed over the newest window entries, so repeats older than the
// listed ones still wear a title down.
func (s *Service) RecentWithRarity(ctx context.Context, limit, window int) ([]entity.Entry, map[uuid.UUID]float64, error) {
	history, err := s.store.RecentEntries(ctx, max(limit, window))
	if err != nil {
		return nil, nil, err
	}
	scores := rarity.Scores(history)
	if len(history) > limit {
		history = history[:limit]
	}
	return history, scores, nil
}
