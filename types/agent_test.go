package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterActive(t *testing.T) {
	all := []Agent{
		{ID: "a", Name: "Ana", IsActive: true},
		{ID: "b", Name: "Bea", IsActive: false},
		{ID: "c", Name: "Caio", IsActive: true},
	}

	tests := []struct {
		name    string
		members []string
		want    []string
	}{
		{
			name:    "keeps member order",
			members: []string{"c", "a"},
			want:    []string{"c", "a"},
		},
		{
			name:    "skips inactive",
			members: []string{"a", "b"},
			want:    []string{"a"},
		},
		{
			name:    "skips unresolvable ids",
			members: []string{"a", "ghost", "c"},
			want:    []string{"a", "c"},
		},
		{
			name:    "empty members",
			members: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterActive(all, tt.members)
			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
