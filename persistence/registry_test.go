package persistence

import (
	"context"
	"testing"

	"github.com/chathy-app/chathy/types"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	reg, err := NewRegistry(db, zap.NewNop())
	require.NoError(t, err)
	return reg
}

func TestRegistry_AgentCRUD(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	agent := types.Agent{
		ID:        "psicologo",
		Name:      "Dr. Paulo",
		Title:     "Psicólogo",
		Specialty: "Psicologia Clínica",
		IsActive:  true,
	}
	require.NoError(t, reg.SaveAgent(ctx, agent))

	got, err := reg.Agent(ctx, "psicologo")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Paulo", got.Name)
	assert.True(t, got.IsActive)

	agent.IsActive = false
	require.NoError(t, reg.SaveAgent(ctx, agent))
	got, err = reg.Agent(ctx, "psicologo")
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, reg.DeleteAgent(ctx, "psicologo"))
	_, err = reg.Agent(ctx, "psicologo")
	require.Error(t, err)
	assert.Equal(t, types.ErrAgentNotFound, types.GetErrorCode(err))
}

func TestRegistry_GroupCRUD(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	grp := types.Group{
		ID:        "meu-time",
		Name:      "Meu Time",
		Members:   []string{"psicologo", "advogado"},
		CreatedBy: types.CreatedByUser,
	}
	require.NoError(t, reg.SaveGroup(ctx, grp))

	got, err := reg.Group(ctx, "meu-time")
	require.NoError(t, err)
	assert.Equal(t, []string{"psicologo", "advogado"}, got.Members)
	assert.Equal(t, types.CreatedByUser, got.CreatedBy)

	_, err = reg.Group(ctx, "inexistente")
	require.Error(t, err)
	assert.Equal(t, types.ErrGroupNotFound, types.GetErrorCode(err))

	require.NoError(t, reg.DeleteGroup(ctx, "meu-time"))
	groups, err := reg.Groups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestRegistry_RejectsEmptyID(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	assert.ErrorIs(t, reg.SaveAgent(ctx, types.Agent{Name: "sem id"}), ErrInvalidInput)
	assert.ErrorIs(t, reg.SaveGroup(ctx, types.Group{Name: "sem id"}), ErrInvalidInput)
}

func TestRegistry_Seed(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Seed(ctx))

	agents, err := reg.Agents(ctx)
	require.NoError(t, err)
	assert.Len(t, agents, len(DefaultAgents()))

	groups, err := reg.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, len(DefaultGroups()))

	// every default group member resolves to a seeded agent
	byID := make(map[string]types.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}
	for _, g := range groups {
		for _, member := range g.Members {
			_, ok := byID[member]
			assert.True(t, ok, "group %s references unknown agent %s", g.ID, member)
		}
	}

	// seeding again is a no-op
	require.NoError(t, reg.Seed(ctx))
	agents, err = reg.Agents(ctx)
	require.NoError(t, err)
	assert.Len(t, agents, len(DefaultAgents()))
}

func TestRegistry_SeedSkippedWhenNotEmpty(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.SaveAgent(ctx, types.Agent{ID: "custom", Name: "Customizado", IsActive: true}))
	require.NoError(t, reg.Seed(ctx))

	agents, err := reg.Agents(ctx)
	require.NoError(t, err)
	assert.Len(t, agents, 1)
}
