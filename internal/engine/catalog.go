package engine

import (
	"slices"
	"strings"
)

// Dish is a static catalog entry. The catalog is fixed at build time; no entry
// is created, mutated or removed at runtime.
type Dish struct {
	NameNL     string
	NameEN     string
	Profile    Profile
	Kitchen    Kitchen
	Vegetarian bool
	// Tags describe the dish; Avoid lists extra allergen markers that do not
	// appear in the names. Both are matched against allergy and no-go tokens.
	Tags  []string
	Avoid []string
}

// Name returns the dish name in the requested language.
func (d Dish) Name(lang Language) string {
	if lang == LanguageEN {
		return d.NameEN
	}
	return d.NameNL
}

// matchText is the full lowercase text a free-form avoid token is matched
// against: both names, the tags and the avoid markers.
func (d Dish) matchText() string {
	parts := []string{strings.ToLower(d.NameNL), strings.ToLower(d.NameEN)}
	parts = append(parts, d.Tags...)
	parts = append(parts, d.Avoid...)
	return strings.Join(parts, " ")
}

// hitsToken reports whether any of the tokens occurs in the dish text.
// Matching is case-insensitive substring matching, which over-excludes rather
// than risk serving an allergen.
func (d Dish) hitsToken(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	text := d.matchText()
	for _, tok := range tokens {
		if tok != "" && strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// Catalog is an immutable set of dishes the selector chooses from. Tests
// inject small catalogs to drive specific selection paths.
type Catalog []Dish

// DefaultCatalog returns a copy of the built-in dish table.
func DefaultCatalog() Catalog {
	return slices.Clone(defaultCatalog)
}

var defaultCatalog = Catalog{
	// Light
	{NameNL: "Citroencouscous met kruiden en groenten", NameEN: "Lemon couscous with herbs and vegetables", Profile: ProfileLight, Kitchen: KitchenMediterranean, Vegetarian: true, Tags: []string{"fris"}, Avoid: []string{"gluten"}},
	{NameNL: "Tomatensoep met basilicum en brood", NameEN: "Tomato soup with basil and bread", Profile: ProfileLight, Kitchen: KitchenLocal, Vegetarian: true, Tags: []string{"soep"}, Avoid: []string{"gluten"}},
	{NameNL: "Geroosterde groenten met citroenyoghurt", NameEN: "Roasted vegetables with lemon yoghurt", Profile: ProfileLight, Kitchen: KitchenLocal, Vegetarian: true, Tags: []string{"oven"}, Avoid: []string{"zuivel"}},
	{NameNL: "Zalm uit de oven met groene salade", NameEN: "Oven salmon with green salad", Profile: ProfileLight, Kitchen: KitchenLocal, Vegetarian: false, Tags: []string{"vis"}},
	{NameNL: "Kip citroen knoflook met sperziebonen", NameEN: "Lemon garlic chicken with green beans", Profile: ProfileLight, Kitchen: KitchenMediterranean, Vegetarian: false, Tags: []string{"kip"}},
	{NameNL: "Glasnoedelsalade met komkommer en sesam", NameEN: "Glass noodle salad with cucumber and sesame", Profile: ProfileLight, Kitchen: KitchenAsian, Vegetarian: true, Tags: []string{"fris"}},

	// Full
	{NameNL: "Pasta arrabbiata met extra groenten", NameEN: "Arrabbiata pasta with extra vegetables", Profile: ProfileFull, Kitchen: KitchenItalian, Vegetarian: true, Tags: []string{"pasta"}, Avoid: []string{"gluten"}},
	{NameNL: "Rijstbowl met tofu en gember", NameEN: "Rice bowl with tofu and ginger", Profile: ProfileFull, Kitchen: KitchenAsian, Vegetarian: true, Tags: []string{"bowl"}, Avoid: []string{"soja"}},
	{NameNL: "Kip tikka met rijst en komkommer", NameEN: "Chicken tikka with rice and cucumber", Profile: ProfileFull, Kitchen: KitchenAsian, Vegetarian: false, Tags: []string{"kruidig"}},
	{NameNL: "Bolognese met salade", NameEN: "Bolognese with salad", Profile: ProfileFull, Kitchen: KitchenItalian, Vegetarian: false, Tags: []string{"pasta"}, Avoid: []string{"gluten"}},
	{NameNL: "Kip in rode wijn met aardappelpuree", NameEN: "Chicken braised in red wine with mash", Profile: ProfileFull, Kitchen: KitchenFrench, Vegetarian: false, Tags: []string{"stoof"}, Avoid: []string{"zuivel"}},
	{NameNL: "Ratatouille met witte bonen", NameEN: "Ratatouille with white beans", Profile: ProfileFull, Kitchen: KitchenFrench, Vegetarian: true, Tags: []string{"oven"}},
	{NameNL: "Stamppot met rookworst", NameEN: "Dutch mash with smoked sausage", Profile: ProfileFull, Kitchen: KitchenLocal, Vegetarian: false, Tags: []string{"stamppot"}},

	// Closing
	{NameNL: "Romige risotto met paddenstoelen", NameEN: "Creamy mushroom risotto", Profile: ProfileClosing, Kitchen: KitchenItalian, Vegetarian: true, Tags: []string{"romig"}, Avoid: []string{"zuivel"}},
	{NameNL: "Ovenschotel met aardappel en groenten", NameEN: "Traybake with potatoes and vegetables", Profile: ProfileClosing, Kitchen: KitchenLocal, Vegetarian: true, Tags: []string{"oven"}},
	{NameNL: "Stoofpotje met rund en wortel", NameEN: "Beef and carrot stew", Profile: ProfileClosing, Kitchen: KitchenFrench, Vegetarian: false, Tags: []string{"stoof"}},
	{NameNL: "Milde groentecurry met kokos", NameEN: "Mild vegetable curry with coconut", Profile: ProfileClosing, Kitchen: KitchenAsian, Vegetarian: true, Tags: []string{"romig"}},
}

// safeDish is the guaranteed-safe placeholder returned when no catalog entry
// survives the vegetarian and allergy filters. It carries no tags so no avoid
// token can match it.
func safeDish(profile Profile) Dish {
	return Dish{
		NameNL:     "Eenvoudige, veilige groenteschotel",
		NameEN:     "Simple, safe vegetable dish",
		Profile:    profile,
		Kitchen:    KitchenFree,
		Vegetarian: true,
	}
}
