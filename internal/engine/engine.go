package engine

import (
	"fmt"
	"strings"
)

// Engine selects one dish per day from a fixed catalog, deterministically.
// It holds no mutable state: calls are independent, side-effect free and safe
// to run concurrently.
type Engine struct {
	catalog Catalog
}

// New creates an Engine over the given catalog.
func New(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// NewDefault creates an Engine over the built-in catalog.
func NewDefault() *Engine {
	return New(DefaultCatalog())
}

// DayPlan is the engine's output for a single day.
type DayPlan struct {
	Day      int     `json:"day"`
	Profile  Profile `json:"profile"`
	Kitchen  Kitchen `json:"kitchen,omitempty"`
	DishName string  `json:"dish_name"`
	Ambition int     `json:"ambition"`
	Why      string  `json:"why"`
}

// Plan is a full run: one DayPlan per requested day, in order. Warnings carry
// the soft-quality signals (fallback used, uniqueness lost); they are never
// errors and callers that care about plan quality should log them.
type Plan struct {
	Days      []DayPlan `json:"days"`
	DaysCount int       `json:"days_count"`
	Persons   int       `json:"persons"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// Plan builds a deterministic day plan for the given context.
func (e *Engine) Plan(ctx Context) *Plan {
	return e.PlanWithSeed(ctx, 0)
}

// PlanWithSeed is Plan with an explicit variation seed. The seed is not a
// random seed: it only indexes into the already filtered and sorted candidate
// list, so identical context and seed always produce the identical plan.
// Callers wanting day-to-day freshness across repeated calls supply a changing
// seed; the engine itself never draws randomness.
func (e *Engine) PlanWithSeed(ctx Context, seed int) *Plan {
	profiles := DayProfiles(ctx.Days)
	kitchens := DayKitchens(ctx.Days)
	ambitions := spreadAmbition(len(profiles), resolveAmbition(ctx))

	plan := &Plan{
		DaysCount: len(profiles),
		Persons:   ctx.Persons,
	}
	used := make(map[string]bool)

	for i, profile := range profiles {
		day := i + 1

		kitchen := KitchenFree
		if i < len(kitchens) {
			kitchen = kitchens[i]
		}
		if ctx.Days == 1 && ctx.Kitchen != KitchenFree {
			kitchen = ctx.Kitchen
		}

		dish, ok := pickDish(e.catalog, ctx, profile, kitchen, used, seed)
		if !ok {
			dish = fallbackDish(e.catalog, ctx, profile)
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("day %d: fallback selection, profile and kitchen match relaxed", day))
		}

		name := dish.Name(ctx.Language)
		if used[name] {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("day %d: %q repeats an earlier day", day, name))
		}
		used[name] = true

		dp := DayPlan{
			Day:      day,
			Profile:  profile,
			DishName: name,
			Ambition: ambitions[i],
			Why:      whyLine(ctx, profile, kitchen, ambitions[i]),
		}
		if kitchen != KitchenFree {
			dp.Kitchen = kitchen
		}
		plan.Days = append(plan.Days, dp)
	}

	return plan
}

// Display labels for the why line. The engine's enum values are English; the
// user-facing Dutch wording lives only here.
var (
	profileLabelNL = map[Profile]string{
		ProfileLight:   "licht",
		ProfileFull:    "vol",
		ProfileClosing: "afrondend",
	}
	momentLabelNL = map[Moment]string{
		MomentWeekday:     "doordeweeks",
		MomentWeekend:     "het weekend",
		MomentCelebration: "iets te vieren",
	}
	timeLabelNL = map[TimeBudget]string{
		TimeShort:    "snel",
		TimeNormal:   "normaal",
		TimeGenerous: "ruim",
	}
	kitchenLabelNL = map[Kitchen]string{
		KitchenLocal:         "hollands",
		KitchenItalian:       "italiaans",
		KitchenAsian:         "aziatisch",
		KitchenMediterranean: "mediterraans",
		KitchenFrench:        "frans",
	}
)

// whyLine builds the short deterministic justification for one day. Pure
// string templating keyed off the context enums; no randomness, no model.
func whyLine(ctx Context, profile Profile, kitchen Kitchen, ambition int) string {
	if ctx.Language == LanguageEN {
		line := fmt.Sprintf("%s profile for a %s moment. Time: %s. Ambition: %d.",
			capitalize(string(profile)), string(ctx.Moment), string(ctx.Time), ambition)
		if kitchen != KitchenFree {
			line += fmt.Sprintf(" Kitchen: %s.", string(kitchen))
		}
		return line
	}

	line := fmt.Sprintf("%s profiel, passend bij %s. Tijd: %s. Ambitie: %d.",
		capitalize(profileLabelNL[profile]), momentLabelNL[ctx.Moment], timeLabelNL[ctx.Time], ambition)
	if kitchen != KitchenFree {
		line += fmt.Sprintf(" Keuken: %s.", kitchenLabelNL[kitchen])
	}
	return line
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
