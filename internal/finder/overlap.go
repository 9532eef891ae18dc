package finder

// Overlap returns the skinsets shared by every champion in a, minus excluded.
// A champion missing from idx has no skinsets, so the result is empty.
func Overlap(a Assignment, idx *SkinsetIndex, excluded SkinsetSet) SkinsetSet {
	result := make(SkinsetSet)
	if len(a) == 0 {
		return result
	}

	for id := range idx.lookup(a[0].Champion) {
		if !excluded.Has(id) {
			result[id] = struct{}{}
		}
	}
	for _, p := range a[1:] {
		if len(result) == 0 {
			break
		}
		set := idx.lookup(p.Champion)
		for id := range result {
			if !set.Has(id) {
				delete(result, id)
			}
		}
	}
	return result
}
