package toc

// Disambiguate assigns each entry the number of earlier entries sharing its
// exact title. Depth plays no part and comparison is case-sensitive.
func Disambiguate(entries []Entry) []Disambiguated {
	out := make([]Disambiguated, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		out[i] = Disambiguated{Entry: e, Occurrence: seen[e.Title]}
		seen[e.Title]++
	}
	return out
}
