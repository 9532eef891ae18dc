// Package finder enumerates champion/lane assignments for a roster of players
// and resolves the skinsets every champion in an assignment has in common.
//
// Everything in this package is a pure computation over in-memory values.
// A SkinsetIndex is immutable once built and may be shared by any number of
// concurrent callers.
package finder

import (
	"sort"

	"github.com/dom/league-skinset-finder/internal/domain"
)

// ChampionID identifies a champion, e.g. "Ahri".
type ChampionID string

// SkinsetID identifies a skinset, e.g. "Star Guardian".
type SkinsetID string

// Candidate is one champion a player is willing to play, in any of Lanes.
type Candidate struct {
	Champion ChampionID     `json:"champion"`
	Lanes    domain.LaneSet `json:"lanes"`
}

// PlayerCandidateSet is the ordered list of candidates for one player.
type PlayerCandidateSet []Candidate

// Roster is the ordered list of every player's candidates. Order defines the
// slot each player occupies in an Assignment.
type Roster []PlayerCandidateSet

// Pick is the champion and lane chosen for one player.
type Pick struct {
	Champion ChampionID  `json:"champion"`
	Lane     domain.Lane `json:"lane"`
}

// Assignment holds one pick per player, in roster order.
type Assignment []Pick

// ResultEntry is an assignment with its non-empty, post-exclusion overlap.
type ResultEntry struct {
	Assignment Assignment  `json:"picks"`
	Skinsets   []SkinsetID `json:"skinsets"`
}

// SkinsetSet is a set of skinset ids.
type SkinsetSet map[SkinsetID]struct{}

// NewSkinsetSet builds a set from ids.
func NewSkinsetSet(ids ...SkinsetID) SkinsetSet {
	s := make(SkinsetSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SkinsetSet) Has(id SkinsetID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s SkinsetSet) Sorted() []SkinsetID {
	ids := make([]SkinsetID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// hasChampion reports whether any pick already uses champion.
func (a Assignment) hasChampion(champion ChampionID) bool {
	for _, p := range a {
		if p.Champion == champion {
			return true
		}
	}
	return false
}

// hasLane reports whether any pick already covers lane.
func (a Assignment) hasLane(lane domain.Lane) bool {
	for _, p := range a {
		if p.Lane == lane {
			return true
		}
	}
	return false
}
