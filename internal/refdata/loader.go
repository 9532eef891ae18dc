// Package refdata loads the skinset and lane reference data from YAML.
package refdata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/finder"
)

//go:embed reference.yaml
var defaultReference []byte

var ErrInvalidDataset = errors.New("invalid reference dataset")

// SkinsetEntry is one skinset and its member champions.
type SkinsetEntry struct {
	Name      string   `yaml:"name"`
	Champions []string `yaml:"champions"`
}

// Dataset is a parsed reference document.
type Dataset struct {
	Skinsets []SkinsetEntry
	Lanes    map[string]domain.LaneSet
}

type document struct {
	Skinsets []SkinsetEntry      `yaml:"skinsets"`
	Lanes    map[string][]string `yaml:"lanes"`
}

// Load parses and validates a reference document.
func Load(r io.Reader) (*Dataset, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{Lanes: map[string]domain.LaneSet{}}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	ds := &Dataset{
		Skinsets: make([]SkinsetEntry, 0, len(doc.Skinsets)),
		Lanes:    make(map[string]domain.LaneSet, len(doc.Lanes)),
	}

	seen := make(map[string]struct{}, len(doc.Skinsets))
	for i, s := range doc.Skinsets {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: skinset %d has no name", ErrInvalidDataset, i+1)
		}
		slug := Slug(name)
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%w: duplicate skinset %q", ErrInvalidDataset, name)
		}
		seen[slug] = struct{}{}

		ds.Skinsets = append(ds.Skinsets, SkinsetEntry{Name: name, Champions: uniqueChampions(s.Champions)})
	}

	for champion, lanes := range doc.Lanes {
		set, err := domain.ParseLaneSet(lanes)
		if err != nil {
			return nil, fmt.Errorf("%w: champion %s: %v", ErrInvalidDataset, champion, err)
		}
		ds.Lanes[champion] = set
	}

	return ds, nil
}

// LoadFile reads a reference document from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the dataset embedded in the binary.
func Default() (*Dataset, error) {
	return Load(bytes.NewReader(defaultReference))
}

// Index builds a finder index keyed by skinset name.
func (d *Dataset) Index() *finder.SkinsetIndex {
	members := make(map[finder.SkinsetID][]finder.ChampionID, len(d.Skinsets))
	for _, s := range d.Skinsets {
		ids := make([]finder.ChampionID, len(s.Champions))
		for i, c := range s.Champions {
			ids[i] = finder.ChampionID(c)
		}
		members[finder.SkinsetID(s.Name)] = ids
	}
	return finder.NewSkinsetIndex(members)
}

// LaneSet returns the lanes champion is eligible for, or an empty set.
func (d *Dataset) LaneSet(champion string) domain.LaneSet {
	return d.Lanes[champion]
}

// Champions returns every champion named by a skinset or the lane table, sorted.
func (d *Dataset) Champions() []string {
	set := make(map[string]struct{})
	for _, s := range d.Skinsets {
		for _, c := range s.Champions {
			set[c] = struct{}{}
		}
	}
	for c := range d.Lanes {
		set[c] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a skinset name into its persistent id, e.g. "Star Guardian" -> "star-guardian".
func Slug(name string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

func uniqueChampions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
