package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/util"
)

// fakeProjectStore mimics the repository contract in memory, including owner
// scoping and updated_at refreshes.
type fakeProjectStore struct {
	projects map[string]*model.Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[string]*model.Project{}}
}

func cloneProject(p *model.Project) *model.Project {
	data, _ := json.Marshal(p)
	var out model.Project
	_ = json.Unmarshal(data, &out)
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	if out.Milestones == nil {
		out.Milestones = []model.Milestone{}
	}
	return &out
}

func (f *fakeProjectStore) find(ownerID, id string) *model.Project {
	p, ok := f.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil
	}
	return p
}

func (f *fakeProjectStore) Insert(_ context.Context, p *model.Project) error {
	f.projects[p.ID] = cloneProject(p)
	return nil
}

func (f *fakeProjectStore) ListByOwner(_ context.Context, ownerID string) ([]model.Project, error) {
	out := make([]model.Project, 0)
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, *cloneProject(p))
		}
	}
	return out, nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, ownerID, id string) (*model.Project, error) {
	p := f.find(ownerID, id)
	if p == nil {
		return nil, model.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (f *fakeProjectStore) Update(_ context.Context, ownerID, id string, patch model.ProjectUpdate) (*model.Project, error) {
	p := f.find(ownerID, id)
	if p == nil {
		return nil, model.ErrProjectNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Deadline != nil {
		p.Deadline = patch.Deadline
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = util.NowUTC()
	return cloneProject(p), nil
}

func (f *fakeProjectStore) Delete(_ context.Context, ownerID, id string) error {
	if f.find(ownerID, id) == nil {
		return model.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) AppendTask(_ context.Context, ownerID, id string, t model.Task) error {
	p := f.find(ownerID, id)
	if p == nil {
		return model.ErrProjectNotFound
	}
	p.Tasks = append(p.Tasks, t)
	p.UpdatedAt = util.NowUTC()
	return nil
}

func (f *fakeProjectStore) AppendMilestone(_ context.Context, ownerID, id string, m model.Milestone) error {
	p := f.find(ownerID, id)
	if p == nil {
		return model.ErrProjectNotFound
	}
	p.Milestones = append(p.Milestones, m)
	p.UpdatedAt = util.NowUTC()
	return nil
}

func (f *fakeProjectStore) RemoveTask(_ context.Context, ownerID, id, taskID string) error {
	p := f.find(ownerID, id)
	if p == nil {
		return model.ErrProjectNotFound
	}
	kept := make([]model.Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	p.Tasks = kept
	p.UpdatedAt = util.NowUTC()
	return nil
}

func (f *fakeProjectStore) RemoveMilestone(_ context.Context, ownerID, id, milestoneID string) error {
	p := f.find(ownerID, id)
	if p == nil {
		return model.ErrProjectNotFound
	}
	kept := make([]model.Milestone, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		if m.ID != milestoneID {
			kept = append(kept, m)
		}
	}
	p.Milestones = kept
	p.UpdatedAt = util.NowUTC()
	return nil
}

func (f *fakeProjectStore) SaveTasks(_ context.Context, ownerID, id string, tasks []model.Task) error {
	p := f.find(ownerID, id)
	if p == nil {
		return model.ErrProjectNotFound
	}
	p.Tasks = tasks
	p.UpdatedAt = util.NowUTC()
	return nil
}

func (f *fakeProjectStore) SaveMilestones(_ context.Context, ownerID, id string, milestones []model.Milestone) error {
	p := f.find(ownerID, id)
	if p == nil {
		return model.ErrProjectNotFound
	}
	p.Milestones = milestones
	p.UpdatedAt = util.NowUTC()
	return nil
}

func newTestProject(t *testing.T, svc *ProjectService, ownerID string) *model.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), ownerID, model.ProjectCreate{Name: "Launch"})
	require.NoError(t, err)
	return p
}

func TestProjectService_CreateDefaults(t *testing.T) {
	svc := NewProjectService(newFakeProjectStore())

	p, err := svc.Create(context.Background(), "owner-a", model.ProjectCreate{Name: "Launch"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "owner-a", p.OwnerID)
	assert.Equal(t, model.ProjectActive, p.Status)
	assert.Equal(t, model.DefaultProjectColor, p.Color)
	assert.Empty(t, p.Tasks)
	assert.Empty(t, p.Milestones)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestProjectService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newFakeProjectStore())
	p := newTestProject(t, svc, "owner-a")

	t.Run("other owner cannot read", func(t *testing.T) {
		_, err := svc.Get(ctx, "owner-b", p.ID)
		assert.ErrorIs(t, err, model.ErrProjectNotFound)
	})

	t.Run("other owner cannot update", func(t *testing.T) {
		name := "hijacked"
		_, err := svc.Update(ctx, "owner-b", p.ID, model.ProjectUpdate{Name: &name})
		assert.ErrorIs(t, err, model.ErrProjectNotFound)
	})

	t.Run("other owner cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, "owner-b", p.ID)
		assert.ErrorIs(t, err, model.ErrProjectNotFound)
	})

	t.Run("other owner cannot touch nested collections", func(t *testing.T) {
		_, err := svc.AddTask(ctx, "owner-b", p.ID, model.TaskCreate{Title: "sneaky"})
		assert.ErrorIs(t, err, model.ErrProjectNotFound)
	})

	t.Run("owner still sees the project", func(t *testing.T) {
		got, err := svc.Get(ctx, "owner-a", p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})
}

func TestProjectService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newFakeProjectStore())
	p := newTestProject(t, svc, "owner-a")

	status := model.ProjectOnHold
	updated, err := svc.Update(ctx, "owner-a", p.ID, model.ProjectUpdate{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.ProjectOnHold, updated.Status)
	assert.Equal(t, "Launch", updated.Name, "unspecified fields keep their values")
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestProjectService_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newFakeProjectStore())
	p := newTestProject(t, svc, "owner-a")

	task, err := svc.AddTask(ctx, "owner-a", p.ID, model.TaskCreate{Title: "Design"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, task.Status)
	assert.Equal(t, "medium", task.Priority)
	assert.Empty(t, task.TimeEntries)
	assert.Nil(t, task.CompletedAt)

	t.Run("done stamps completed_at", func(t *testing.T) {
		done := model.TaskDone
		updated, err := svc.UpdateTask(ctx, "owner-a", p.ID, task.ID, model.TaskUpdate{Status: &done})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("reopening clears completed_at", func(t *testing.T) {
		inProgress := model.TaskInProgress
		updated, err := svc.UpdateTask(ctx, "owner-a", p.ID, task.ID, model.TaskUpdate{Status: &inProgress})
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("redoing stamps a fresh completed_at", func(t *testing.T) {
		done := model.TaskDone
		updated, err := svc.UpdateTask(ctx, "owner-a", p.ID, task.ID, model.TaskUpdate{Status: &done})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("unknown task is its own not-found", func(t *testing.T) {
		done := model.TaskDone
		_, err := svc.UpdateTask(ctx, "owner-a", p.ID, "missing", model.TaskUpdate{Status: &done})
		assert.ErrorIs(t, err, model.ErrTaskNotFound)
	})

	t.Run("delete then re-delete is idempotent", func(t *testing.T) {
		require.NoError(t, svc.DeleteTask(ctx, "owner-a", p.ID, task.ID))
		require.NoError(t, svc.DeleteTask(ctx, "owner-a", p.ID, task.ID))

		got, err := svc.Get(ctx, "owner-a", p.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Tasks)
	})
}

func TestProjectService_TimeEntries(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newFakeProjectStore())
	p := newTestProject(t, svc, "owner-a")

	task, err := svc.AddTask(ctx, "owner-a", p.ID, model.TaskCreate{Title: "Design"})
	require.NoError(t, err)

	entry, err := svc.AddTimeEntry(ctx, "owner-a", p.ID, task.ID, model.TimeEntryCreate{
		DurationMinutes: 60,
		Date:            "2024-01-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.CreatedAt)

	t.Run("entry lands on the task", func(t *testing.T) {
		got, err := svc.Get(ctx, "owner-a", p.ID)
		require.NoError(t, err)
		require.Len(t, got.Tasks, 1)
		require.Len(t, got.Tasks[0].TimeEntries, 1)
		assert.Equal(t, 60, got.Tasks[0].TimeEntries[0].DurationMinutes)
	})

	t.Run("adding to a missing task fails", func(t *testing.T) {
		_, err := svc.AddTimeEntry(ctx, "owner-a", p.ID, "missing", model.TimeEntryCreate{
			DurationMinutes: 30,
			Date:            "2024-01-02",
		})
		assert.ErrorIs(t, err, model.ErrTaskNotFound)
	})

	t.Run("delete is idempotent on the entry", func(t *testing.T) {
		require.NoError(t, svc.DeleteTimeEntry(ctx, "owner-a", p.ID, task.ID, entry.ID))
		require.NoError(t, svc.DeleteTimeEntry(ctx, "owner-a", p.ID, task.ID, entry.ID))

		got, err := svc.Get(ctx, "owner-a", p.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Tasks[0].TimeEntries)
	})
}

func TestProjectService_Milestones(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newFakeProjectStore())
	p := newTestProject(t, svc, "owner-a")

	m, err := svc.AddMilestone(ctx, "owner-a", p.ID, model.MilestoneCreate{
		Title:   "Beta",
		DueDate: "2030-01-01",
	})
	require.NoError(t, err)
	assert.False(t, m.Completed)
	assert.Nil(t, m.CompletedAt)

	t.Run("toggle on stamps completed_at", func(t *testing.T) {
		updated, err := svc.SetMilestoneCompleted(ctx, "owner-a", p.ID, m.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("toggle off clears completed_at", func(t *testing.T) {
		updated, err := svc.SetMilestoneCompleted(ctx, "owner-a", p.ID, m.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.Completed)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("unknown milestone is its own not-found", func(t *testing.T) {
		_, err := svc.SetMilestoneCompleted(ctx, "owner-a", p.ID, "missing", true)
		assert.ErrorIs(t, err, model.ErrMilestoneNotFound)
	})

	t.Run("removing a missing milestone from an existing project succeeds", func(t *testing.T) {
		assert.NoError(t, svc.DeleteMilestone(ctx, "owner-a", p.ID, "missing"))
	})

	t.Run("removing from a missing project fails", func(t *testing.T) {
		err := svc.DeleteMilestone(ctx, "owner-a", "missing", m.ID)
		assert.ErrorIs(t, err, model.ErrProjectNotFound)
	})
}
