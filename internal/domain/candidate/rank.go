package candidate

import "sort"

// Rank returns the top records ordered by descending score.  The sort is
// stable, so records with equal scores keep their input order, which in
// practice is the order the AI service returned them.  Records without a
// score rank as 0.
//
// limit semantics: limit <= 0 returns an empty slice; a limit larger than the
// pool returns the whole pool.  The input slice is never mutated.
func Rank(records []Record, limit int) []Record {
	if limit <= 0 || len(records) == 0 {
		return []Record{}
	}
	ranked := make([]Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveScore() > ranked[j].EffectiveScore()
	})
	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}
