package team

import (
	"fmt"
	"strings"
)

// Team is a national or franchise side resolvable by country name.
type Team struct {
	ID         string
	Name       string
	ShortName  string
	Country    string
	SquadIDs   []string
	CaptainID  string
	Ranking    int
	IsActive   bool
	ProviderID string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// SlugID derives the stable team id for a country or team name. Resolving the
// same name always yields the same id, which keeps find-or-create idempotent.
func SlugID(name string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
	if slug == "" {
		return ""
	}
	return "team_" + slug
}

// ShortNameFor abbreviates a team name the way the provider-facing UI
// expects. Slicing happens on runes so multibyte names stay valid UTF-8.
func ShortNameFor(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
