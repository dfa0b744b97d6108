package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/chathy-app/chathy/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registry stores agents and groups in a relational database via GORM.
// The orchestration core only reads from it; the admin surface writes.
type Registry struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRegistry wires a registry over an open GORM connection and migrates
// the schema.
func NewRegistry(db *gorm.DB, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&types.Agent{}, &types.Group{}); err != nil {
		return nil, fmt.Errorf("migrate registry schema: %w", err)
	}
	return &Registry{
		db:     db,
		logger: logger.With(zap.String("component", "registry")),
	}, nil
}

// Agents returns all stored agents.
func (r *Registry) Agents(ctx context.Context) ([]types.Agent, error) {
	var agents []types.Agent
	if err := r.db.WithContext(ctx).Find(&agents).Error; err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

// Agent returns one agent by id.
func (r *Registry) Agent(ctx context.Context, id string) (*types.Agent, error) {
	var agent types.Agent
	err := r.db.WithContext(ctx).First(&agent, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewError(types.ErrAgentNotFound, fmt.Sprintf("agent %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("load agent %s: %w", id, err)
	}
	return &agent, nil
}

// SaveAgent inserts or updates an agent.
func (r *Registry) SaveAgent(ctx context.Context, agent types.Agent) error {
	if agent.ID == "" {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Save(&agent).Error
}

// DeleteAgent removes an agent by id.
func (r *Registry) DeleteAgent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&types.Agent{}, "id = ?", id).Error
}

// Groups returns all stored groups.
func (r *Registry) Groups(ctx context.Context) ([]types.Group, error) {
	var groups []types.Group
	if err := r.db.WithContext(ctx).Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Group returns one group by id.
func (r *Registry) Group(ctx context.Context, id string) (*types.Group, error) {
	var grp types.Group
	err := r.db.WithContext(ctx).First(&grp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewError(types.ErrGroupNotFound, fmt.Sprintf("group %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("load group %s: %w", id, err)
	}
	return &grp, nil
}

// SaveGroup inserts or updates a group.
func (r *Registry) SaveGroup(ctx context.Context, grp types.Group) error {
	if grp.ID == "" {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Save(&grp).Error
}

// DeleteGroup removes a group by id.
func (r *Registry) DeleteGroup(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&types.Group{}, "id = ?", id).Error
}

// Seed inserts the default agents and groups when the registry is empty.
// Idempotent across restarts.
func (r *Registry) Seed(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&types.Agent{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count agents: %w", err)
	}
	if count > 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, agent := range DefaultAgents() {
			if err := tx.Create(&agent).Error; err != nil {
				return fmt.Errorf("seed agent %s: %w", agent.ID, err)
			}
		}
		for _, grp := range DefaultGroups() {
			if err := tx.Create(&grp).Error; err != nil {
				return fmt.Errorf("seed group %s: %w", grp.ID, err)
			}
		}
		r.logger.Info("registry seeded with defaults",
			zap.Int("agents", len(DefaultAgents())),
			zap.Int("groups", len(DefaultGroups())),
		)
		return nil
	})
}
