package group

import (
	"regexp"
	"strings"

	"github.com/chathy-app/chathy/types"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the ids of participants addressed with an @token
// in text. Each token is matched case-insensitively as a substring against
// the participants' name, title and id; the first participant in roster
// order with any matching field wins. Tokens that match nothing are ignored,
// and an agent appears at most once regardless of how often it is mentioned.
func ExtractMentions(text string, participants []types.Agent) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var mentions []string
	seen := make(map[string]bool)

	for _, m := range matches {
		token := strings.ToLower(m[1])
		for _, agent := range participants {
			if !strings.Contains(strings.ToLower(agent.Name), token) &&
				!strings.Contains(strings.ToLower(agent.Title), token) &&
				!strings.Contains(strings.ToLower(agent.ID), token) {
				continue
			}
			if !seen[agent.ID] {
				seen[agent.ID] = true
				mentions = append(mentions, agent.ID)
			}
			break
		}
	}

	return mentions
}
