package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
	"github.com/dom/league-skinset-finder/internal/refdata"
	"github.com/dom/league-skinset-finder/internal/repository"
	"github.com/google/uuid"
)

var ErrIndexNotLoaded = errors.New("skinset index not loaded")

// snapshot is one immutable generation of reference data. Reload publishes a
// new snapshot and never touches the previous one.
type snapshot struct {
	version  string
	index    *finder.SkinsetIndex
	lanes    map[string]domain.LaneSet
	slugs    map[string]finder.SkinsetID
	loadedAt time.Time
}

type FinderService struct {
	championRepo repository.ChampionRepository
	skinsetRepo  repository.SkinsetRepository
	cache        cache.ResultCache
	cacheTTL     time.Duration
	limits       finder.Limits
	current      atomic.Pointer[snapshot]
}

// NewFinderService creates the service. resultCache may be nil to disable caching.
func NewFinderService(championRepo repository.ChampionRepository, skinsetRepo repository.SkinsetRepository, resultCache cache.ResultCache, cfg *config.Config) *FinderService {
	return &FinderService{
		championRepo: championRepo,
		skinsetRepo:  skinsetRepo,
		cache:        resultCache,
		cacheTTL:     cfg.ResultCacheTTL,
		limits: finder.Limits{
			MaxPlayers:     cfg.MaxPlayers,
			MaxAssignments: cfg.MaxAssignments,
		},
	}
}

// Reload rebuilds the skinset index from the repositories and swaps it in.
func (s *FinderService) Reload(ctx context.Context) error {
	skinsets, err := s.skinsetRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load skinsets: %w", err)
	}
	champions, err := s.championRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load champions: %w", err)
	}

	members := make(map[finder.SkinsetID][]finder.ChampionID, len(skinsets))
	slugs := make(map[string]finder.SkinsetID, len(skinsets))
	for _, set := range skinsets {
		ids := make([]finder.ChampionID, len(set.Members))
		for i, m := range set.Members {
			ids[i] = finder.ChampionID(m.ChampionID)
		}
		members[finder.SkinsetID(set.Name)] = ids
		slugs[set.ID] = finder.SkinsetID(set.Name)
	}

	lanes := make(map[string]domain.LaneSet, len(champions))
	for _, c := range champions {
		lanes[c.ID] = c.LaneSet()
	}

	snap := &snapshot{
		version:  uuid.New().String(),
		index:    finder.NewSkinsetIndex(members),
		lanes:    lanes,
		slugs:    slugs,
		loadedAt: time.Now(),
	}
	s.current.Store(snap)

	log.Printf("INFO [finder.Reload]: index %s loaded with %d skinsets and %d champions", snap.version, len(skinsets), snap.index.Len())
	return nil
}

// IndexVersion returns the version of the loaded index, or "" before the first Reload.
func (s *FinderService) IndexVersion() string {
	if snap := s.current.Load(); snap != nil {
		return snap.version
	}
	return ""
}

// Limits returns the limits Resolve and Stream run with.
func (s *FinderService) Limits() finder.Limits {
	return s.limits
}

// PlayerInput is one roster row of a resolve request.
type PlayerInput = refdata.Player

type ResolveInput struct {
	Players          []PlayerInput `json:"players"`
	ExcludedSkinsets []string      `json:"excludedSkinsets"`
}

type ResolveResult struct {
	QueryID      uuid.UUID
	IndexVersion string
	Players      []string
	Results      []finder.ResultEntry
	Cached       bool
	Elapsed      time.Duration
}

type query struct {
	*refdata.Query
	snap *snapshot
}

func (s *FinderService) prepare(in ResolveInput) (*query, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrIndexNotLoaded
	}

	lookup := refdata.Lookup{
		Lanes: func(champion string) domain.LaneSet { return snap.lanes[champion] },
		Slugs: snap.slugs,
	}
	return &query{
		Query: refdata.BuildQuery(in.Players, in.ExcludedSkinsets, lookup),
		snap:  snap,
	}, nil
}

func (q *query) cacheKey(limits finder.Limits) string {
	data, _ := json.Marshal(struct {
		Version  string             `json:"v"`
		Roster   finder.Roster      `json:"r"`
		Excluded []finder.SkinsetID `json:"x"`
		Limits   finder.Limits      `json:"l"`
	}{q.snap.version, q.Roster, q.Excluded.Sorted(), limits})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Resolve runs the roster through the finder pipeline against the current index.
func (s *FinderService) Resolve(ctx context.Context, in ResolveInput) (*ResolveResult, error) {
	start := time.Now()

	q, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	result := &ResolveResult{
		QueryID:      uuid.New(),
		IndexVersion: q.snap.version,
		Players:      q.Players,
	}

	key := q.cacheKey(s.limits)
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("ERROR [finder.Resolve] cache get: %v", err)
		} else if ok {
			if err := json.Unmarshal(data, &result.Results); err == nil {
				result.Cached = true
				result.Elapsed = time.Since(start)
				return result, nil
			}
		}
	}

	entries, err := finder.ResolvePlayableCompsWithLimits(q.Roster, q.snap.index, q.Excluded, s.limits)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []finder.ResultEntry{}
	}
	result.Results = entries

	if s.cache != nil {
		data, err := json.Marshal(entries)
		if err == nil {
			err = s.cache.Set(ctx, key, data, s.cacheTTL)
		}
		if err != nil {
			log.Printf("ERROR [finder.Resolve] cache set: %v", err)
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

type StreamSummary struct {
	QueryID      uuid.UUID
	IndexVersion string
	Players      []string
	Count        int
}

// Stream visits the entries Resolve would return, in order, bypassing the
// cache. It stops early when ctx is done or fn returns an error.
func (s *FinderService) Stream(ctx context.Context, in ResolveInput, fn func(finder.ResultEntry) error) (*StreamSummary, error) {
	q, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	summary := &StreamSummary{
		QueryID:      uuid.New(),
		IndexVersion: q.snap.version,
		Players:      q.Players,
	}

	var stopErr error
	err = finder.Each(q.Roster, q.snap.index, q.Excluded, s.limits, func(e finder.ResultEntry) bool {
		if stopErr = ctx.Err(); stopErr != nil {
			return false
		}
		if stopErr = fn(e); stopErr != nil {
			return false
		}
		summary.Count++
		return true
	})
	if err != nil {
		return nil, err
	}
	if stopErr != nil {
		return summary, stopErr
	}
	return summary, nil
}
