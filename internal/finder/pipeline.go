package finder

// ResolvePlayableComps enumerates roster with DefaultLimits and keeps the
// assignments that share at least one non-excluded skinset.
func ResolvePlayableComps(roster Roster, idx *SkinsetIndex, excluded SkinsetSet) ([]ResultEntry, error) {
	return ResolvePlayableCompsWithLimits(roster, idx, excluded, DefaultLimits)
}

func ResolvePlayableCompsWithLimits(roster Roster, idx *SkinsetIndex, excluded SkinsetSet, limits Limits) ([]ResultEntry, error) {
	var entries []ResultEntry
	err := Each(roster, idx, excluded, limits, func(e ResultEntry) bool {
		entries = append(entries, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Each visits the entries ResolvePlayableCompsWithLimits would return, in the
// same order, until fn returns false. Enumeration errors are returned before
// fn is ever called.
func Each(roster Roster, idx *SkinsetIndex, excluded SkinsetSet, limits Limits, fn func(ResultEntry) bool) error {
	assignments, err := EnumerateWithLimits(roster, limits)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		shared := Overlap(a, idx, excluded)
		if len(shared) == 0 {
			continue
		}
		if !fn(ResultEntry{Assignment: a, Skinsets: shared.Sorted()}) {
			return nil
		}
	}
	return nil
}
