package engine

// DayProfiles maps a day count to the fixed light → full → closing rhythm.
// Day counts outside the allowed set degrade to an all-light sequence; the
// Context invariant makes that branch unreachable in practice.
func DayProfiles(days int) []Profile {
	switch days {
	case 2:
		return []Profile{ProfileLight, ProfileClosing}
	case 3:
		return []Profile{ProfileLight, ProfileFull, ProfileClosing}
	case 5:
		return []Profile{ProfileLight, ProfileFull, ProfileLight, ProfileFull, ProfileClosing}
	}
	if days < 1 {
		days = 1
	}
	out := make([]Profile, days)
	for i := range out {
		out[i] = ProfileLight
	}
	return out
}

// DayKitchens maps a day count to the fixed cuisine rotation used for forward
// plans. A single day gets KitchenFree: there the user's explicit kitchen
// wish decides, if any.
func DayKitchens(days int) []Kitchen {
	switch days {
	case 2:
		return []Kitchen{KitchenLocal, KitchenItalian}
	case 3:
		return []Kitchen{KitchenLocal, KitchenItalian, KitchenAsian}
	case 5:
		return []Kitchen{KitchenLocal, KitchenItalian, KitchenMediterranean, KitchenFrench, KitchenLocal}
	}
	if days < 1 {
		days = 1
	}
	out := make([]Kitchen, days)
	for i := range out {
		out[i] = KitchenFree
	}
	return out
}
