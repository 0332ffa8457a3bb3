package engine

import (
	"reflect"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	ctx := Normalize(nil)

	if ctx.Mode != ModeToday {
		t.Errorf("Expected mode 'today', got '%s'", ctx.Mode)
	}
	if ctx.Days != 1 {
		t.Errorf("Expected days 1, got %d", ctx.Days)
	}
	if ctx.Persons != 2 {
		t.Errorf("Expected persons 2, got %d", ctx.Persons)
	}
	if ctx.Vegetarian {
		t.Error("Expected vegetarian to default to false")
	}
	if len(ctx.Allergies) != 0 {
		t.Errorf("Expected no allergies, got %v", ctx.Allergies)
	}
	if ctx.Moment != MomentWeekday {
		t.Errorf("Expected moment 'weekday', got '%s'", ctx.Moment)
	}
	if ctx.Time != TimeNormal {
		t.Errorf("Expected time 'normal', got '%s'", ctx.Time)
	}
	if ctx.Ambition != 2 {
		t.Errorf("Expected ambition 2, got %d", ctx.Ambition)
	}
	if ctx.Language != LanguageNL {
		t.Errorf("Expected language 'nl', got '%s'", ctx.Language)
	}
	if ctx.Kitchen != KitchenFree {
		t.Errorf("Expected kitchen 'free', got '%s'", ctx.Kitchen)
	}
}

func TestNormalizeDays(t *testing.T) {
	t.Run("AllowedValues", func(t *testing.T) {
		for _, days := range []int{1, 2, 3, 5} {
			ctx := Normalize(map[string]any{"mode": "forward", "days": days})
			if ctx.Days != days {
				t.Errorf("Expected days %d, got %d", days, ctx.Days)
			}
		}
	})

	t.Run("DisallowedValueDefaultsToOne", func(t *testing.T) {
		for _, days := range []any{4, 7, 0, -1, "zes", nil} {
			ctx := Normalize(map[string]any{"mode": "forward", "days": days})
			if ctx.Days != 1 {
				t.Errorf("Expected days %v to normalize to 1, got %d", days, ctx.Days)
			}
		}
	})

	t.Run("TodayForcesOneDay", func(t *testing.T) {
		ctx := Normalize(map[string]any{"mode": "today", "days": 5})
		if ctx.Days != 1 {
			t.Errorf("Expected today mode to force 1 day, got %d", ctx.Days)
		}
	})

	t.Run("StringDaysParsed", func(t *testing.T) {
		ctx := Normalize(map[string]any{"mode": "vooruit", "days": "3 dagen"})
		if ctx.Days != 3 {
			t.Errorf("Expected days 3, got %d", ctx.Days)
		}
	})
}

func TestNormalizePersonsClamped(t *testing.T) {
	cases := map[any]int{
		0:        1,
		1:        1,
		8:        8,
		12:       8,
		"4":      4,
		"veel":   2,
		nil:      2,
		3.0:      3,
		int64(6): 6,
	}

	for raw, want := range cases {
		ctx := Normalize(map[string]any{"persons": raw})
		if ctx.Persons != want {
			t.Errorf("persons %v: expected %d, got %d", raw, want, ctx.Persons)
		}
	}
}

func TestNormalizeVegetarian(t *testing.T) {
	truthy := []any{true, "1", "true", "YES", "ja", "y", "on", 1}
	for _, v := range truthy {
		if ctx := Normalize(map[string]any{"vegetarian": v}); !ctx.Vegetarian {
			t.Errorf("Expected %v to read as vegetarian", v)
		}
	}

	falsy := []any{false, "0", "nee", "no", "", nil, 2, []string{"ja"}}
	for _, v := range falsy {
		if ctx := Normalize(map[string]any{"vegetarian": v}); ctx.Vegetarian {
			t.Errorf("Expected %v to read as not vegetarian", v)
		}
	}
}

func TestNormalizeAllergies(t *testing.T) {
	t.Run("FromString", func(t *testing.T) {
		ctx := Normalize(map[string]any{"allergies": "Noten, vis; GLUTEN , "})
		want := []string{"noten", "vis", "gluten"}
		if !reflect.DeepEqual(ctx.Allergies, want) {
			t.Errorf("Expected %v, got %v", want, ctx.Allergies)
		}
	})

	t.Run("FromList", func(t *testing.T) {
		ctx := Normalize(map[string]any{"allergies": []any{" Pinda ", "", "soja"}})
		want := []string{"pinda", "soja"}
		if !reflect.DeepEqual(ctx.Allergies, want) {
			t.Errorf("Expected %v, got %v", want, ctx.Allergies)
		}
	})

	t.Run("FromGarbage", func(t *testing.T) {
		ctx := Normalize(map[string]any{"allergies": 42})
		if len(ctx.Allergies) != 0 {
			t.Errorf("Expected no allergies, got %v", ctx.Allergies)
		}
	})
}

func TestNormalizeEnums(t *testing.T) {
	t.Run("DutchAliases", func(t *testing.T) {
		ctx := Normalize(map[string]any{
			"mode":   "vooruit",
			"days":   2,
			"moment": "iets_te_vieren",
			"time":   "uitgebreid",
		})
		if ctx.Mode != ModeForward {
			t.Errorf("Expected mode 'forward', got '%s'", ctx.Mode)
		}
		if ctx.Moment != MomentCelebration {
			t.Errorf("Expected moment 'celebration', got '%s'", ctx.Moment)
		}
		if ctx.Time != TimeGenerous {
			t.Errorf("Expected time 'generous', got '%s'", ctx.Time)
		}
	})

	t.Run("UnknownValuesDefault", func(t *testing.T) {
		ctx := Normalize(map[string]any{"moment": "maandag", "time": "eindeloos", "language": "fr"})
		if ctx.Moment != MomentWeekday {
			t.Errorf("Expected moment 'weekday', got '%s'", ctx.Moment)
		}
		if ctx.Time != TimeNormal {
			t.Errorf("Expected time 'normal', got '%s'", ctx.Time)
		}
		if ctx.Language != LanguageNL {
			t.Errorf("Expected language 'nl', got '%s'", ctx.Language)
		}
	})

	t.Run("SecondaryLanguage", func(t *testing.T) {
		ctx := Normalize(map[string]any{"language": " EN "})
		if ctx.Language != LanguageEN {
			t.Errorf("Expected language 'en', got '%s'", ctx.Language)
		}
	})
}

func TestNormalizeAmbitionClamped(t *testing.T) {
	cases := map[any]int{0: 1, 1: 1, 4: 4, 9: 4, "3": 3, "hoog": 2, nil: 2}
	for raw, want := range cases {
		ctx := Normalize(map[string]any{"ambition": raw})
		if ctx.Ambition != want {
			t.Errorf("ambition %v: expected %d, got %d", raw, want, ctx.Ambition)
		}
	}
}

func TestNormalizeKitchenWish(t *testing.T) {
	t.Run("HonoredForSingleDay", func(t *testing.T) {
		ctx := Normalize(map[string]any{"mode": "today", "kitchen": "italiaans"})
		if ctx.Kitchen != KitchenItalian {
			t.Errorf("Expected kitchen 'italian', got '%s'", ctx.Kitchen)
		}
	})

	t.Run("IgnoredForForwardPlans", func(t *testing.T) {
		ctx := Normalize(map[string]any{"mode": "forward", "days": 3, "kitchen": "italian"})
		if ctx.Kitchen != KitchenFree {
			t.Errorf("Expected kitchen 'free' for a forward plan, got '%s'", ctx.Kitchen)
		}
	})

	t.Run("UnknownKitchenIgnored", func(t *testing.T) {
		ctx := Normalize(map[string]any{"kitchen": "peruviaans"})
		if ctx.Kitchen != KitchenFree {
			t.Errorf("Expected kitchen 'free', got '%s'", ctx.Kitchen)
		}
	})
}
