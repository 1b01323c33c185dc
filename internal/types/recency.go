package types

import "sort"

// noDateDays is the synthetic age assigned to entities without a date, so
// they always sort after every dated entity under ascending days-ago order.
const noDateDays = 1 << 30

// EntitiesByRecency returns a copy of r.Entities sorted by (IsKey descending,
// DaysAgo ascending); entities without a date sort as older than any dated
// entity. The sort is stable so equal-priority entities keep source order.
func (r ParseResult) EntitiesByRecency() []Entity {
	out := make([]Entity, len(r.Entities))
	copy(out, r.Entities)

	age := func(e Entity) int {
		if !e.HasDate {
			return noDateDays
		}
		return e.DaysAgo
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsKey != out[j].IsKey {
			return out[i].IsKey
		}
		return age(out[i]) < age(out[j])
	})
	return out
}
