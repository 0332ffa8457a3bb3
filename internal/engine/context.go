package engine

// Mode distinguishes a single-day choice from a multi-day forward plan.
type Mode string

const (
	ModeToday   Mode = "today"
	ModeForward Mode = "forward"
)

// Moment describes the occasion a plan is cooked for.
type Moment string

const (
	MomentWeekday     Moment = "weekday"
	MomentWeekend     Moment = "weekend"
	MomentCelebration Moment = "celebration"
)

// TimeBudget is how much kitchen time the user is willing to spend.
type TimeBudget string

const (
	TimeShort    TimeBudget = "short"
	TimeNormal   TimeBudget = "normal"
	TimeGenerous TimeBudget = "generous"
)

// Language selects which half of a dish's bilingual name pair is used.
type Language string

const (
	LanguageNL Language = "nl"
	LanguageEN Language = "en"
)

// Profile is the narrative weight of a day. It governs which dishes are
// eligible for that day.
type Profile string

const (
	ProfileLight   Profile = "light"
	ProfileFull    Profile = "full"
	ProfileClosing Profile = "closing"
)

// Kitchen is a cuisine-style constraint. KitchenFree means no constraint is
// enforced for that day.
type Kitchen string

const (
	KitchenLocal         Kitchen = "local"
	KitchenItalian       Kitchen = "italian"
	KitchenAsian         Kitchen = "asian"
	KitchenMediterranean Kitchen = "mediterranean"
	KitchenFrench        Kitchen = "french"
	KitchenFree          Kitchen = "free"
)

// The front-ends historically sent Dutch values for these enums; both
// spellings are accepted at the normalization boundary and nowhere else.
var momentAliases = map[string]Moment{
	"weekday":          MomentWeekday,
	"doordeweeks":      MomentWeekday,
	"weekend":          MomentWeekend,
	"celebration":      MomentCelebration,
	"special-occasion": MomentCelebration,
	"iets_te_vieren":   MomentCelebration,
}

var timeAliases = map[string]TimeBudget{
	"short":      TimeShort,
	"snel":       TimeShort,
	"normal":     TimeNormal,
	"normaal":    TimeNormal,
	"generous":   TimeGenerous,
	"ruim":       TimeGenerous,
	"uitgebreid": TimeGenerous,
}

var kitchenAliases = map[string]Kitchen{
	"local":         KitchenLocal,
	"nl_be":         KitchenLocal,
	"italian":       KitchenItalian,
	"italiaans":     KitchenItalian,
	"asian":         KitchenAsian,
	"aziatisch":     KitchenAsian,
	"mediterranean": KitchenMediterranean,
	"mediterraans":  KitchenMediterranean,
	"french":        KitchenFrench,
	"frans":         KitchenFrench,
	"free":          KitchenFree,
	"vrij":          KitchenFree,
}

// Context is the normalized input for one plan call. It is built once by
// Normalize and read-only afterwards.
type Context struct {
	Mode       Mode       `json:"mode"`
	Days       int        `json:"days"`
	Persons    int        `json:"persons"`
	Vegetarian bool       `json:"vegetarian"`
	Allergies  []string   `json:"allergies,omitempty"`
	NoGo       []string   `json:"nogo,omitempty"`
	Moment     Moment     `json:"moment"`
	Time       TimeBudget `json:"time"`
	Ambition   int        `json:"ambition"`
	Language   Language   `json:"language"`

	// Kitchen is an explicit cuisine wish. It is only honored for single-day
	// plans; forward plans follow the fixed kitchen rotation instead.
	Kitchen Kitchen `json:"kitchen,omitempty"`
}

// Normalize converts a loosely typed raw mapping into a fully populated
// Context. Every missing, malformed or out-of-range value degrades to a
// documented default; this function never fails.
func Normalize(raw map[string]any) Context {
	var ctx Context

	switch normalizeString(raw["mode"]) {
	case "forward", "vooruit":
		ctx.Mode = ModeForward
	default:
		ctx.Mode = ModeToday
	}

	days := safeInt(raw["days"], 1)
	if days != 1 && days != 2 && days != 3 && days != 5 {
		days = 1
	}
	if ctx.Mode == ModeToday {
		days = 1
	}
	ctx.Days = days

	ctx.Persons = clamp(safeInt(raw["persons"], 2), 1, 8)
	ctx.Vegetarian = toBool(raw["vegetarian"])
	ctx.Allergies = splitList(raw["allergies"])
	ctx.NoGo = splitList(raw["nogo"])

	if m, ok := momentAliases[normalizeString(raw["moment"])]; ok {
		ctx.Moment = m
	} else {
		ctx.Moment = MomentWeekday
	}

	if tb, ok := timeAliases[normalizeString(raw["time"])]; ok {
		ctx.Time = tb
	} else {
		ctx.Time = TimeNormal
	}

	ctx.Ambition = clamp(safeInt(raw["ambition"], 2), 1, 4)

	if normalizeString(raw["language"]) == "en" {
		ctx.Language = LanguageEN
	} else {
		ctx.Language = LanguageNL
	}

	ctx.Kitchen = KitchenFree
	if k, ok := kitchenAliases[normalizeString(raw["kitchen"])]; ok && ctx.Days == 1 {
		ctx.Kitchen = k
	}

	return ctx
}
