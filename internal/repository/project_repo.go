package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/util"
)

// listCap bounds every owner-scoped scan.
const listCap = 1000

const projectColumns = `id, owner_id, name, description, color, status, deadline, tasks, milestones, created_at, updated_at`

// ProjectRepository persists project aggregates. Tasks and milestones live as
// JSONB documents on the project row; every operation is scoped by
// (id, owner_id) so a non-owned project is indistinguishable from a missing
// one.
type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var (
		p              model.Project
		tasksJSON      []byte
		milestonesJSON []byte
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Color, &p.Status,
		&p.Deadline, &tasksJSON, &milestonesJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tasksJSON, &p.Tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if err := json.Unmarshal(milestonesJSON, &p.Milestones); err != nil {
		return nil, fmt.Errorf("failed to decode milestones: %w", err)
	}
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	if p.Milestones == nil {
		p.Milestones = []model.Milestone{}
	}
	return &p, nil
}

// Insert stores a freshly created project.
func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	tasksJSON, err := json.Marshal(p.Tasks)
	if err != nil {
		return err
	}
	milestonesJSON, err := json.Marshal(p.Milestones)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO projects (id, owner_id, name, description, color, status, deadline, tasks, milestones, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err = r.db.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.Description, p.Color, p.Status,
		p.Deadline, tasksJSON, milestonesJSON, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return err
	}

	r.logger.Info("Project inserted",
		zap.String("id", p.ID),
		zap.String("owner_id", p.OwnerID),
	)
	return nil
}

// ListByOwner returns the owner's projects in storage order, capped.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE owner_id = $1
        ORDER BY created_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, ownerID, listCap)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			r.logger.Error("Failed to scan project", zap.Error(err))
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID returns a single owner-scoped project.
func (r *ProjectRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE id = $1 AND owner_id = $2
    `
	p, err := scanProject(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProjectNotFound
		}
		r.logger.Error("Failed to get project", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of patch in one atomic statement and
// refreshes updated_at.
func (r *ProjectRepository) Update(ctx context.Context, ownerID, id string, patch model.ProjectUpdate) (*model.Project, error) {
	query := `
        UPDATE projects
        SET name        = COALESCE($3, name),
            description = COALESCE($4, description),
            color       = COALESCE($5, color),
            deadline    = COALESCE($6, deadline),
            status      = COALESCE($7, status),
            updated_at  = $8
        WHERE id = $1 AND owner_id = $2
        RETURNING ` + projectColumns + `
	`
	p, err := scanProject(r.db.QueryRow(ctx, query,
		id, ownerID,
		patch.Name, patch.Description, patch.Color, patch.Deadline, patch.Status,
		util.NowUTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProjectNotFound
		}
		r.logger.Error("Failed to update project", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Delete removes the project row; embedded tasks and milestones go with it.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	r.logger.Info("Project deleted", zap.String("id", id))
	return nil
}

// AppendTask atomically appends one task to the project's tasks document.
func (r *ProjectRepository) AppendTask(ctx context.Context, ownerID, id string, t model.Task) error {
	taskJSON, err := json.Marshal(t)
	if err != nil {
		return err
	}

	query := `
        UPDATE projects
        SET tasks = tasks || $3::jsonb, updated_at = $4
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.db.Exec(ctx, query, id, ownerID, taskJSON, util.NowUTC())
	if err != nil {
		r.logger.Error("Failed to append task", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// AppendMilestone atomically appends one milestone.
func (r *ProjectRepository) AppendMilestone(ctx context.Context, ownerID, id string, m model.Milestone) error {
	milestoneJSON, err := json.Marshal(m)
	if err != nil {
		return err
	}

	query := `
        UPDATE projects
        SET milestones = milestones || $3::jsonb, updated_at = $4
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.db.Exec(ctx, query, id, ownerID, milestoneJSON, util.NowUTC())
	if err != nil {
		r.logger.Error("Failed to append milestone", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// RemoveTask filters a task out of the document by id. Removal is idempotent:
// a missing task is not an error, only a missing project is.
func (r *ProjectRepository) RemoveTask(ctx context.Context, ownerID, id, taskID string) error {
	query := `
        UPDATE projects
        SET tasks = COALESCE(
                (SELECT jsonb_agg(t) FROM jsonb_array_elements(tasks) AS t WHERE t->>'id' <> $3),
                '[]'::jsonb),
            updated_at = $4
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.db.Exec(ctx, query, id, ownerID, taskID, util.NowUTC())
	if err != nil {
		r.logger.Error("Failed to remove task", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// RemoveMilestone filters a milestone out of the document by id, idempotently.
func (r *ProjectRepository) RemoveMilestone(ctx context.Context, ownerID, id, milestoneID string) error {
	query := `
        UPDATE projects
        SET milestones = COALESCE(
                (SELECT jsonb_agg(m) FROM jsonb_array_elements(milestones) AS m WHERE m->>'id' <> $3),
                '[]'::jsonb),
            updated_at = $4
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.db.Exec(ctx, query, id, ownerID, milestoneID, util.NowUTC())
	if err != nil {
		r.logger.Error("Failed to remove milestone", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// SaveTasks writes the whole tasks sequence back. In-place nested edits are
// read-modify-write at document granularity; concurrent editors of the same
// project can lose updates.
func (r *ProjectRepository) SaveTasks(ctx context.Context, ownerID, id string, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	query := `
        UPDATE projects
        SET tasks = $3, updated_at = $4
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.db.Exec(ctx, query, id, ownerID, tasksJSON, util.NowUTC())
	if err != nil {
		r.logger.Error("Failed to save tasks", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// SaveMilestones writes the whole milestones sequence back.
func (r *ProjectRepository) SaveMilestones(ctx context.Context, ownerID, id string, milestones []model.Milestone) error {
	if milestones == nil {
		milestones = []model.Milestone{}
	}
	milestonesJSON, err := json.Marshal(milestones)
	if err != nil {
		return err
	}

	query := `
        UPDATE projects
        SET milestones = $3, updated_at = $4
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.db.Exec(ctx, query, id, ownerID, milestonesJSON, util.NowUTC())
	if err != nil {
		r.logger.Error("Failed to save milestones", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}
