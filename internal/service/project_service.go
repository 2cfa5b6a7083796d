package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/util"
)

// ProjectStore is the persistence surface for project aggregates. Appends and
// removals are atomic single-document operations; SaveTasks/SaveMilestones
// back the read-modify-write path used for in-place nested edits.
type ProjectStore interface {
	Insert(ctx context.Context, p *model.Project) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Project, error)
	Update(ctx context.Context, ownerID, id string, patch model.ProjectUpdate) (*model.Project, error)
	Delete(ctx context.Context, ownerID, id string) error
	AppendTask(ctx context.Context, ownerID, id string, t model.Task) error
	AppendMilestone(ctx context.Context, ownerID, id string, m model.Milestone) error
	RemoveTask(ctx context.Context, ownerID, id, taskID string) error
	RemoveMilestone(ctx context.Context, ownerID, id, milestoneID string) error
	SaveTasks(ctx context.Context, ownerID, id string, tasks []model.Task) error
	SaveMilestones(ctx context.Context, ownerID, id string, milestones []model.Milestone) error
}

// ProjectService owns project CRUD and all nested-collection edits. Every
// method takes the caller's owner id; a project someone else owns surfaces as
// not-found.
type ProjectService struct {
	store ProjectStore
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, req model.ProjectCreate) (*model.Project, error) {
	color := req.Color
	if color == "" {
		color = model.DefaultProjectColor
	}

	now := util.NowUTC()
	p := &model.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		Status:      model.ProjectActive,
		Deadline:    req.Deadline,
		OwnerID:     ownerID,
		Tasks:       []model.Task{},
		Milestones:  []model.Milestone{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, ownerID string) ([]model.Project, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

func (s *ProjectService) Get(ctx context.Context, ownerID, id string) (*model.Project, error) {
	return s.store.GetByID(ctx, ownerID, id)
}

func (s *ProjectService) Update(ctx context.Context, ownerID, id string, patch model.ProjectUpdate) (*model.Project, error) {
	return s.store.Update(ctx, ownerID, id, patch)
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.Delete(ctx, ownerID, id)
}

// AddTask appends a new task to the project.
func (s *ProjectService) AddTask(ctx context.Context, ownerID, projectID string, req model.TaskCreate) (*model.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	t := model.Task{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Status:         model.TaskTodo,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		TimeEntries:    []model.TimeEntry{},
		CreatedAt:      util.NowUTC(),
	}

	if err := s.store.AppendTask(ctx, ownerID, projectID, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask merges the patch into the located task and persists the whole
// sequence back.
func (s *ProjectService) UpdateTask(ctx context.Context, ownerID, projectID, taskID string, patch model.TaskUpdate) (*model.Task, error) {
	p, err := s.store.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	i := taskIndex(p.Tasks, taskID)
	if i < 0 {
		return nil, model.ErrTaskNotFound
	}

	p.Tasks[i] = model.MergeTask(p.Tasks[i], patch, util.NowUTC())

	if err := s.store.SaveTasks(ctx, ownerID, projectID, p.Tasks); err != nil {
		return nil, err
	}
	return &p.Tasks[i], nil
}

// DeleteTask removes a task by id; removing an already-gone task succeeds.
func (s *ProjectService) DeleteTask(ctx context.Context, ownerID, projectID, taskID string) error {
	return s.store.RemoveTask(ctx, ownerID, projectID, taskID)
}

// AddTimeEntry appends an entry to the located task's time_entries.
func (s *ProjectService) AddTimeEntry(ctx context.Context, ownerID, projectID, taskID string, req model.TimeEntryCreate) (*model.TimeEntry, error) {
	p, err := s.store.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	i := taskIndex(p.Tasks, taskID)
	if i < 0 {
		return nil, model.ErrTaskNotFound
	}

	entry := model.TimeEntry{
		ID:              uuid.NewString(),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Date:            req.Date,
		CreatedAt:       util.NowUTC(),
	}
	p.Tasks[i].TimeEntries = append(p.Tasks[i].TimeEntries, entry)

	if err := s.store.SaveTasks(ctx, ownerID, projectID, p.Tasks); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimeEntry filters an entry out of the located task, idempotently.
func (s *ProjectService) DeleteTimeEntry(ctx context.Context, ownerID, projectID, taskID, entryID string) error {
	p, err := s.store.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return err
	}

	i := taskIndex(p.Tasks, taskID)
	if i < 0 {
		return model.ErrTaskNotFound
	}

	kept := make([]model.TimeEntry, 0, len(p.Tasks[i].TimeEntries))
	for _, te := range p.Tasks[i].TimeEntries {
		if te.ID != entryID {
			kept = append(kept, te)
		}
	}
	p.Tasks[i].TimeEntries = kept

	return s.store.SaveTasks(ctx, ownerID, projectID, p.Tasks)
}

// AddMilestone appends a new milestone to the project.
func (s *ProjectService) AddMilestone(ctx context.Context, ownerID, projectID string, req model.MilestoneCreate) (*model.Milestone, error) {
	m := model.Milestone{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   false,
	}

	if err := s.store.AppendMilestone(ctx, ownerID, projectID, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SetMilestoneCompleted toggles a milestone's completion flag.
func (s *ProjectService) SetMilestoneCompleted(ctx context.Context, ownerID, projectID, milestoneID string, completed bool) (*model.Milestone, error) {
	p, err := s.store.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	i := milestoneIndex(p.Milestones, milestoneID)
	if i < 0 {
		return nil, model.ErrMilestoneNotFound
	}

	p.Milestones[i] = model.SetMilestoneCompleted(p.Milestones[i], completed, util.NowUTC())

	if err := s.store.SaveMilestones(ctx, ownerID, projectID, p.Milestones); err != nil {
		return nil, err
	}
	return &p.Milestones[i], nil
}

// DeleteMilestone removes a milestone by id, idempotently.
func (s *ProjectService) DeleteMilestone(ctx context.Context, ownerID, projectID, milestoneID string) error {
	return s.store.RemoveMilestone(ctx, ownerID, projectID, milestoneID)
}

func taskIndex(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func milestoneIndex(milestones []model.Milestone, id string) int {
	for i := range milestones {
		if milestones[i].ID == id {
			return i
		}
	}
	return -1
}
