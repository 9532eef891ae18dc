package finder

import "sort"

// SkinsetIndex maps each champion to the skinsets it belongs to.
// It is never modified after NewSkinsetIndex returns.
type SkinsetIndex struct {
	byChampion map[ChampionID]SkinsetSet
	skinsets   []SkinsetID
}

// NewSkinsetIndex inverts a skinset → champions feed into a champion lookup.
func NewSkinsetIndex(members map[SkinsetID][]ChampionID) *SkinsetIndex {
	idx := &SkinsetIndex{
		byChampion: make(map[ChampionID]SkinsetSet),
		skinsets:   make([]SkinsetID, 0, len(members)),
	}
	for skinset, champions := range members {
		idx.skinsets = append(idx.skinsets, skinset)
		for _, c := range champions {
			set, ok := idx.byChampion[c]
			if !ok {
				set = make(SkinsetSet)
				idx.byChampion[c] = set
			}
			set[skinset] = struct{}{}
		}
	}
	sort.Slice(idx.skinsets, func(i, j int) bool { return idx.skinsets[i] < idx.skinsets[j] })
	return idx
}

// lookup returns the shared set for champion. Callers must not modify it.
func (idx *SkinsetIndex) lookup(champion ChampionID) SkinsetSet {
	if idx == nil {
		return nil
	}
	return idx.byChampion[champion]
}

// Skinsets returns the skinsets champion belongs to, sorted.
func (idx *SkinsetIndex) Skinsets(champion ChampionID) []SkinsetID {
	return idx.lookup(champion).Sorted()
}

// SkinsetIDs returns every skinset in the index, sorted.
func (idx *SkinsetIndex) SkinsetIDs() []SkinsetID {
	if idx == nil {
		return nil
	}
	out := make([]SkinsetID, len(idx.skinsets))
	copy(out, idx.skinsets)
	return out
}

// Len returns the number of champions with at least one skinset.
func (idx *SkinsetIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byChampion)
}
