package model

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on_hold"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

const DefaultProjectColor = "#4F46E5"

// Project is the aggregate root: tasks and milestones are embedded and share
// its storage row. Ownership is exclusive, there is no sharing.
type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Status      string      `json:"status"`
	Deadline    *string     `json:"deadline"`
	OwnerID     string      `json:"owner_id"`
	Tasks       []Task      `json:"tasks"`
	Milestones  []Milestone `json:"milestones"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

type Task struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Priority       string      `json:"priority"`
	Status         string      `json:"status"`
	DueDate        *string     `json:"due_date"`
	EstimatedHours *float64    `json:"estimated_hours"`
	TimeEntries    []TimeEntry `json:"time_entries"`
	CreatedAt      string      `json:"created_at"`
	CompletedAt    *string     `json:"completed_at"`
}

// TimeEntry is immutable once created; the only mutation is deletion.
type TimeEntry struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `json:"date"`
	CreatedAt       string `json:"created_at"`
}

type Milestone struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
}

// ProjectCreate is the request payload for creating a project.
type ProjectCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Deadline    *string `json:"deadline"`
}

// ProjectUpdate carries the fields of a partial project update; nil means
// "leave untouched".
type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
}

type TaskCreate struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
}

type TaskUpdate struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Priority       *string  `json:"priority"`
	Status         *string  `json:"status"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
}

type TimeEntryCreate struct {
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `json:"date" binding:"required"`
}

type MilestoneCreate struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"`
}
