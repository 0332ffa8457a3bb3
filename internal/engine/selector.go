package engine

import "sort"

// pickDish returns the best strict-filter candidate for a day, or false when
// the filters leave nothing. Candidates are sorted by resolved name so the
// choice is stable; the seed only shifts which sorted candidate is taken.
func pickDish(catalog Catalog, ctx Context, profile Profile, kitchen Kitchen, used map[string]bool, seed int) (Dish, bool) {
	var candidates []Dish
	for _, d := range catalog {
		if d.Profile != profile {
			continue
		}
		if kitchen != KitchenFree && d.Kitchen != kitchen {
			continue
		}
		if ctx.Vegetarian && !d.Vegetarian {
			continue
		}
		if d.hitsToken(ctx.Allergies) || d.hitsToken(ctx.NoGo) {
			continue
		}
		if used[d.Name(ctx.Language)] {
			continue
		}
		candidates = append(candidates, d)
	}

	if len(candidates) == 0 {
		return Dish{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name(ctx.Language) < candidates[j].Name(ctx.Language)
	})

	idx := seed % len(candidates)
	if idx < 0 {
		idx += len(candidates)
	}
	return candidates[idx], true
}

// profileRank orders profiles for the fallback distance metric.
var profileRank = map[Profile]int{
	ProfileLight:   1,
	ProfileFull:    2,
	ProfileClosing: 3,
}

// fallbackDish guarantees a dish when strict filtering yields nothing. Only
// the safety constraints survive: vegetarian compatibility and allergy
// avoidance are never relaxed. Profile fit, kitchen fit, no-go preferences and
// name uniqueness are all sacrificed here. The pool is ranked by distance from
// the requested profile, then by resolved name.
func fallbackDish(catalog Catalog, ctx Context, profile Profile) Dish {
	var pool []Dish
	for _, d := range catalog {
		if ctx.Vegetarian && !d.Vegetarian {
			continue
		}
		if d.hitsToken(ctx.Allergies) {
			continue
		}
		pool = append(pool, d)
	}

	if len(pool) == 0 {
		return safeDish(profile)
	}

	sort.Slice(pool, func(i, j int) bool {
		di := absInt(profileRank[pool[i].Profile] - profileRank[profile])
		dj := absInt(profileRank[pool[j].Profile] - profileRank[profile])
		if di != dj {
			return di < dj
		}
		return pool[i].Name(ctx.Language) < pool[j].Name(ctx.Language)
	})
	return pool[0]
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
