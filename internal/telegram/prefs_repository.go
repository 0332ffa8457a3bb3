package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Prefs holds a user's standing preferences, applied to every request
// unless the request overrides them.
type Prefs struct {
	UserID     string
	Persons    int
	Vegetarian bool
	Allergies  []string
	NoGo       []string
	Language   string
	UpdatedAt  time.Time
}

// PrefsRepository provides access to stored user preferences.
type PrefsRepository struct {
	db *sql.DB
}

// NewPrefsRepository creates a new PrefsRepository instance.
func NewPrefsRepository(db *sql.DB) *PrefsRepository {
	return &PrefsRepository{db: db}
}

// Get retrieves preferences for a user. A user without stored preferences
// gets defaults back, not an error.
func (r *PrefsRepository) Get(ctx context.Context, userID string) (Prefs, error) {
	prefs := Prefs{UserID: userID, Persons: 2, Language: "nl"}

	var allergies, nogo string
	err := r.db.QueryRowContext(ctx,
		`SELECT persons, vegetarian, allergies, nogo, language, updated_at
		 FROM user_prefs WHERE user_id = ?`, userID).
		Scan(&prefs.Persons, &prefs.Vegetarian, &allergies, &nogo, &prefs.Language, &prefs.UpdatedAt)
	if err == sql.ErrNoRows {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to get prefs for user %s: %w", userID, err)
	}

	prefs.Allergies = splitCSV(allergies)
	prefs.NoGo = splitCSV(nogo)
	return prefs, nil
}

// Upsert stores preferences for a user, replacing any existing row.
func (r *PrefsRepository) Upsert(ctx context.Context, prefs Prefs) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_prefs (user_id, persons, vegetarian, allergies, nogo, language, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   persons = excluded.persons,
		   vegetarian = excluded.vegetarian,
		   allergies = excluded.allergies,
		   nogo = excluded.nogo,
		   language = excluded.language,
		   updated_at = excluded.updated_at`,
		prefs.UserID, prefs.Persons, prefs.Vegetarian,
		strings.Join(prefs.Allergies, ","), strings.Join(prefs.NoGo, ","),
		prefs.Language, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert prefs for user %s: %w", prefs.UserID, err)
	}
	return nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
