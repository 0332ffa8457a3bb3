package engine

// momentAmbitionCap bounds ambition by the occasion.
var momentAmbitionCap = map[Moment]int{
	MomentWeekday:     2,
	MomentWeekend:     3,
	MomentCelebration: 4,
}

// resolveAmbition applies the time and moment caps to the requested ambition.
func resolveAmbition(ctx Context) int {
	ambition := ctx.Ambition

	switch ctx.Time {
	case TimeShort:
		ambition = min(ambition, 2)
	case TimeNormal:
		ambition = min(ambition, 3)
	}

	if limit, ok := momentAmbitionCap[ctx.Moment]; ok {
		ambition = min(ambition, limit)
	}
	return clamp(ambition, 1, 4)
}

// spreadAmbition distributes a base ambition over the days of a run. Low
// ambition stays uniform; higher ambition goes to a single highlight day while
// the rest of the run stays at 2.
func spreadAmbition(days, base int) []int {
	if days == 1 {
		return []int{base}
	}

	out := make([]int, days)
	if base <= 2 {
		for i := range out {
			out[i] = base
		}
		return out
	}

	for i := range out {
		out[i] = 2
	}
	highlight := 1
	if days == 5 {
		highlight = 3
	}
	out[highlight] = base
	return out
}
