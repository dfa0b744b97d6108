package types

// Agent is a persona profile. Identity is immutable; the free-text fields
// (guidelines, persona style, documentation) shape behavior and are passed
// verbatim into prompts, never parsed.
type Agent struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Specialty   string `json:"specialty"`
	Description string `json:"description"`

	Experience    string `json:"experience"`
	Approach      string `json:"approach"`
	Guidelines    string `json:"guidelines"`
	PersonaStyle  string `json:"persona_style"`
	Documentation string `json:"documentation"`

	// Display-only fields carried for the UI layer; opaque to orchestration.
	Icon   string `json:"icon,omitempty"`
	Color  string `json:"color,omitempty"`
	Avatar string `json:"avatar,omitempty"`

	IsActive bool `json:"is_active"`
}

// UserProfile personalizes prompt composition. Consumed read-only.
type UserProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// FilterActive returns the agents from all whose ids appear in memberIDs and
// that are active, preserving memberIDs order. Unresolvable ids are skipped.
func FilterActive(all []Agent, memberIDs []string) []Agent {
	byID := make(map[string]Agent, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}
	members := make([]Agent, 0, len(memberIDs))
	for _, id := range memberIDs {
		if a, ok := byID[id]; ok && a.IsActive {
			members = append(members, a)
		}
	}
	return members
}
