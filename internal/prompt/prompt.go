// Package prompt builds the deterministic user instruction that accompanies
// a resolved day plan to the model. The engine decides, the prompt only
// carries the decision.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"peet-planner/internal/engine"
)

//go:embed system_prompt.md
var systemPrompt string

// SystemPrompt returns the fixed system instruction for recipe writing.
func SystemPrompt() string {
	return systemPrompt
}

// Build renders the user prompt for a normalized context and its resolved
// plan. The output is fully deterministic for identical inputs.
func Build(ctx engine.Context, plan *engine.Plan) string {
	if ctx.Language == engine.LanguageEN {
		return buildEN(ctx, plan)
	}
	return buildNL(ctx, plan)
}

func buildNL(ctx engine.Context, plan *engine.Plan) string {
	var lines []string

	if ctx.Days == 1 {
		lines = append(lines, "De gebruiker vraagt om een keuze voor vandaag.")
	} else {
		lines = append(lines, fmt.Sprintf("De gebruiker vraagt om een vooruit-planning voor %d dagen.", ctx.Days))
	}

	personsWord := "persoon"
	if ctx.Persons > 1 {
		personsWord = "personen"
	}
	lines = append(lines, fmt.Sprintf("Er wordt gekookt voor %d %s.", ctx.Persons, personsWord))

	if len(ctx.Allergies) > 0 {
		lines = append(lines, fmt.Sprintf("De gerechten mogen geen %s bevatten.", joinSentence(ctx.Allergies, "en")))
	}
	if len(ctx.NoGo) > 0 {
		lines = append(lines, fmt.Sprintf("Vermijd nadrukkelijk %s.", joinSentence(ctx.NoGo, "en")))
	}
	if ctx.Vegetarian {
		lines = append(lines, "De gerechten moeten volledig vegetarisch zijn.")
	}

	lines = append(lines, "", "Gebruik exact de volgende gerechten per dag, in deze volgorde:")
	for _, day := range plan.Days {
		line := fmt.Sprintf("Dag %d: %s (profiel %s, ambitie %d)", day.Day, day.DishName, day.Profile, day.Ambition)
		if day.Kitchen != "" {
			line = fmt.Sprintf("Dag %d: %s (profiel %s, keuken %s, ambitie %d)", day.Day, day.DishName, day.Profile, day.Kitchen, day.Ambition)
		}
		lines = append(lines, line)
	}

	if ctx.Days > 1 {
		lines = append(lines,
			"Zorg voor variatie tussen dagen zonder herhaling van dominante ingrediënten of kruiden. De reeks moet rustig en samenhangend aanvoelen.")
	} else {
		lines = append(lines,
			"Het gerecht moet passen bij dit moment en praktisch zijn om thuis te koken.")
	}

	lines = append(lines, "",
		fmt.Sprintf("Maak exact %d dag(en). Voeg geen extra dagen toe. De output moet exact dit aantal dagen bevatten.", ctx.Days))

	if ctx.Moment == engine.MomentWeekend && ctx.Time == engine.TimeGenerous {
		lines = append(lines, "",
			"Omdat dit een weekendmoment met voldoende tijd is, mag iets extra aandacht worden genomen in smaak en afwerking, maar blijf altijd binnen huiselijk koken zonder professionele of chef-achtige technieken.")
	} else {
		lines = append(lines, "",
			"Vermijd expliciet de volgende technieken en instructies:",
			"- reduceren tot stroperig",
			"- schuimen",
			"- sous-vide",
			"- emulsies uitleggen",
			"- lange rusttijden of wachttijden (zoals 45 minuten laten rusten)",
			"Houd alle bereidingen direct, begrijpelijk en huiselijk.")
	}

	return strings.Join(lines, "\n")
}

func buildEN(ctx engine.Context, plan *engine.Plan) string {
	var lines []string

	if ctx.Days == 1 {
		lines = append(lines, "The user asks for a choice for today.")
	} else {
		lines = append(lines, fmt.Sprintf("The user asks for a forward plan covering %d days.", ctx.Days))
	}

	personsWord := "person"
	if ctx.Persons > 1 {
		personsWord = "people"
	}
	lines = append(lines, fmt.Sprintf("Cooking is for %d %s.", ctx.Persons, personsWord))

	if len(ctx.Allergies) > 0 {
		lines = append(lines, fmt.Sprintf("The dishes must not contain %s.", joinSentence(ctx.Allergies, "and")))
	}
	if len(ctx.NoGo) > 0 {
		lines = append(lines, fmt.Sprintf("Strictly avoid %s.", joinSentence(ctx.NoGo, "and")))
	}
	if ctx.Vegetarian {
		lines = append(lines, "All dishes must be fully vegetarian.")
	}

	lines = append(lines, "", "Use exactly the following dishes per day, in this order:")
	for _, day := range plan.Days {
		line := fmt.Sprintf("Day %d: %s (profile %s, ambition %d)", day.Day, day.DishName, day.Profile, day.Ambition)
		if day.Kitchen != "" {
			line = fmt.Sprintf("Day %d: %s (profile %s, kitchen %s, ambition %d)", day.Day, day.DishName, day.Profile, day.Kitchen, day.Ambition)
		}
		lines = append(lines, line)
	}

	if ctx.Days > 1 {
		lines = append(lines,
			"Provide variation between days without repeating dominant ingredients or seasonings. The sequence should feel calm and coherent.")
	} else {
		lines = append(lines,
			"The dish must fit this moment and be practical to cook at home.")
	}

	lines = append(lines, "",
		fmt.Sprintf("Produce exactly %d day(s). Do not add extra days. The output must contain exactly this number of days.", ctx.Days))

	if ctx.Moment == engine.MomentWeekend && ctx.Time == engine.TimeGenerous {
		lines = append(lines, "",
			"Since this is a weekend moment with ample time, a little extra attention to flavor and finish is welcome, but always stay within home cooking without professional or chef-like techniques.")
	} else {
		lines = append(lines, "",
			"Explicitly avoid the following techniques and instructions:",
			"- reducing until syrupy",
			"- foams",
			"- sous-vide",
			"- explaining emulsions",
			"- long resting or waiting times (such as resting for 45 minutes)",
			"Keep all preparations direct, understandable and homely.")
	}

	return strings.Join(lines, "\n")
}

// joinSentence joins items as "a, b en c" style prose.
func joinSentence(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " " + conj + " " + items[len(items)-1]
	}
}
