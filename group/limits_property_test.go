package group

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/chathy-app/chathy/types"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"pgregory.net/rapid"
)

func TestSplitAgentMessage_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(4, 1000).Draw(t, "max")
		text := rapid.String().Draw(t, "text")
		l := Limits{MaxAgentMessageLength: max}

		parts := l.SplitAgentMessage(text)

		if len(parts) == 0 || len(parts) > 2 {
			t.Fatalf("expected 1 or 2 parts, got %d", len(parts))
		}

		if utf8.RuneCountInString(text) <= max {
			if len(parts) != 1 || parts[0] != text {
				t.Fatalf("short text must pass through unchanged")
			}
			return
		}

		// first chunk respects the bound; every chunk is trimmed
		if utf8.RuneCountInString(parts[0]) > max {
			t.Fatalf("first chunk exceeds limit: %d > %d", utf8.RuneCountInString(parts[0]), max)
		}
		for _, p := range parts {
			if p != strings.TrimSpace(p) {
				t.Fatalf("chunk not trimmed: %q", p)
			}
		}

		// chunks reconstruct the original modulo whitespace at the seam
		joined := strings.Join(parts, " ")
		normalize := func(s string) string {
			return strings.Join(strings.Fields(s), "")
		}
		if normalize(joined) != normalize(text) {
			t.Fatalf("chunks do not reconstruct original:\n%q\nvs\n%q", joined, text)
		}
	})
}

func TestTrimHistory_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genHistory := gen.SliceOf(gen.AlphaString().Map(func(id string) types.GroupMessage {
		return types.GroupMessage{ID: id, GroupID: "g1"}
	}))

	properties.Property("output never exceeds the bound", prop.ForAll(
		func(msgs []types.GroupMessage, max int) bool {
			l := Limits{MaxHistoryLength: max}
			return len(l.TrimHistory(msgs)) <= max
		},
		genHistory, gen.IntRange(0, 50),
	))

	properties.Property("input within bound is identity", prop.ForAll(
		func(msgs []types.GroupMessage) bool {
			l := Limits{MaxHistoryLength: len(msgs)}
			out := l.TrimHistory(msgs)
			if len(out) != len(msgs) {
				return false
			}
			for i := range msgs {
				if out[i].ID != msgs[i].ID {
					return false
				}
			}
			return true
		},
		genHistory,
	))

	properties.Property("trim keeps the latest suffix", prop.ForAll(
		func(msgs []types.GroupMessage, max int) bool {
			l := Limits{MaxHistoryLength: max}
			out := l.TrimHistory(msgs)
			want := msgs
			if len(msgs) > max {
				want = msgs[len(msgs)-max:]
			}
			if len(out) != len(want) {
				return false
			}
			for i := range want {
				if out[i].ID != want[i].ID {
					return false
				}
			}
			return true
		},
		genHistory, gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}
