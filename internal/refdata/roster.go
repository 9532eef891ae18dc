package refdata

import (
	"fmt"
	"strings"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
)

// Player is one roster row as a user enters it.
type Player struct {
	Name    string `json:"name"`
	Exclude bool   `json:"exclude"`
	// Champions with no lanes fall back to the reference lanes.
	Champions []finder.Candidate `json:"champions"`
}

// Query is a roster ready for the finder, with a display name per player.
type Query struct {
	Players  []string
	Roster   finder.Roster
	Excluded finder.SkinsetSet
}

// Lookup resolves reference data for BuildQuery. Lanes returns the stored
// eligibility of a champion. Slugs maps a skinset slug to its index id.
type Lookup struct {
	Lanes func(champion string) domain.LaneSet
	Slugs map[string]finder.SkinsetID
}

// BuildQuery drops excluded players and names the others, falling back to
// "Player N" for their original 1-based position. Exclusions match a skinset
// by name or slug; unknown ones are kept as given.
func BuildQuery(players []Player, excluded []string, lookup Lookup) *Query {
	q := &Query{Excluded: finder.NewSkinsetSet()}

	for i, p := range players {
		if p.Exclude {
			continue
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}

		set := make(finder.PlayerCandidateSet, len(p.Champions))
		for j, c := range p.Champions {
			if c.Lanes.IsEmpty() && lookup.Lanes != nil {
				c.Lanes = lookup.Lanes(string(c.Champion))
			}
			set[j] = c
		}

		q.Players = append(q.Players, name)
		q.Roster = append(q.Roster, set)
	}

	for _, name := range excluded {
		name = strings.TrimSpace(name)
		if id, ok := lookup.Slugs[Slug(name)]; ok {
			q.Excluded[id] = struct{}{}
			continue
		}
		q.Excluded[finder.SkinsetID(name)] = struct{}{}
	}

	return q
}

// Lookup returns the reference lookups of the dataset.
func (d *Dataset) Lookup() Lookup {
	slugs := make(map[string]finder.SkinsetID, len(d.Skinsets))
	for _, s := range d.Skinsets {
		slugs[Slug(s.Name)] = finder.SkinsetID(s.Name)
	}
	return Lookup{Lanes: d.LaneSet, Slugs: slugs}
}
