package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
)

func analyticsNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, "2024-06-01T00:00:00Z")
	require.NoError(t, err)
	return now
}

func TestBuildOverview_Counts(t *testing.T) {
	deadline := "2099-01-01"
	projects := []model.Project{
		{
			ID:       "p1",
			Name:     "Launch",
			Status:   model.ProjectActive,
			Deadline: &deadline,
			Tasks: []model.Task{
				{ID: "t1", Status: model.TaskDone, TimeEntries: []model.TimeEntry{
					{ID: "e1", DurationMinutes: 90, Date: "2024-01-01"},
				}},
				{ID: "t2", Status: model.TaskInProgress},
				{ID: "t3", Status: model.TaskTodo},
				{ID: "t4", Status: model.TaskDone},
			},
			Milestones: []model.Milestone{
				{ID: "m1", Title: "Beta", DueDate: "2030-01-01"},
				{ID: "m2", Title: "Alpha", DueDate: "2024-01-01", Completed: true},
			},
		},
		{ID: "p2", Name: "Archive", Status: model.ProjectCompleted},
	}

	o := buildOverview(projects, analyticsNow(t))

	assert.Equal(t, 2, o.TotalProjects)
	assert.Equal(t, 1, o.ActiveProjects)
	assert.Equal(t, 1, o.CompletedProjects)
	assert.Equal(t, 4, o.TotalTasks)
	assert.Equal(t, 2, o.CompletedTasks)
	assert.Equal(t, 1, o.InProgressTasks)
	assert.Equal(t, 1, o.TodoTasks)
	assert.Equal(t, 1.5, o.TotalTimeHours)
	assert.Equal(t, 2, o.TotalMilestones)
	assert.Equal(t, 1, o.CompletedMilestones)
	assert.Equal(t, 50.0, o.TaskCompletionRate)

	// Milestone due 2030 sorts before the 2099 project deadline; the
	// completed milestone never appears.
	require.Len(t, o.UpcomingDeadlines, 2)
	assert.Equal(t, "milestone", o.UpcomingDeadlines[0].Type)
	assert.Equal(t, "Beta", o.UpcomingDeadlines[0].Name)
	assert.Equal(t, "Launch", o.UpcomingDeadlines[0].ProjectName)
	assert.Equal(t, "project", o.UpcomingDeadlines[1].Type)
	assert.Equal(t, "Launch", o.UpcomingDeadlines[1].Name)
	assert.Empty(t, o.UpcomingDeadlines[1].ProjectName)
}

func TestBuildOverview_Empty(t *testing.T) {
	o := buildOverview(nil, analyticsNow(t))

	assert.Equal(t, 0, o.TotalProjects)
	assert.Equal(t, 0.0, o.TaskCompletionRate, "no tasks means rate zero, not NaN")
	assert.NotNil(t, o.UpcomingDeadlines)
	assert.Empty(t, o.UpcomingDeadlines)
}

func TestBuildOverview_FullCompletionRate(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Status: model.ProjectActive, Tasks: []model.Task{
			{ID: "t1", Status: model.TaskDone},
		}},
	}

	o := buildOverview(projects, analyticsNow(t))
	assert.Equal(t, 100.0, o.TaskCompletionRate)
}

func TestBuildOverview_DeadlineFiltering(t *testing.T) {
	now := analyticsNow(t)
	past := "2020-01-01"
	garbage := "not-a-date"
	projects := []model.Project{
		{ID: "p1", Name: "Past", Status: model.ProjectActive, Deadline: &past},
		{ID: "p2", Name: "Garbage", Status: model.ProjectActive, Deadline: &garbage},
		{ID: "p3", Name: "NoDeadline", Status: model.ProjectActive},
	}

	o := buildOverview(projects, now)
	assert.Empty(t, o.UpcomingDeadlines, "past, unparsable and absent deadlines are all skipped")
}

func TestBuildOverview_DeadlineCap(t *testing.T) {
	now := analyticsNow(t)
	projects := make([]model.Project, 0, 8)
	for i := 0; i < 8; i++ {
		d := fmt.Sprintf("203%d-01-01", i)
		projects = append(projects, model.Project{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Project %d", i),
			Status:   model.ProjectActive,
			Deadline: &d,
		})
	}

	o := buildOverview(projects, now)
	require.Len(t, o.UpcomingDeadlines, 5)
	assert.Equal(t, "2030-01-01", o.UpcomingDeadlines[0].Deadline)
	assert.Equal(t, "2034-01-01", o.UpcomingDeadlines[4].Deadline)
}

func TestBuildTimeTracking(t *testing.T) {
	projects := []model.Project{
		{
			ID:    "p1",
			Name:  "Launch",
			Color: "#FF0000",
			Tasks: []model.Task{
				{ID: "t1", TimeEntries: []model.TimeEntry{
					{ID: "e1", DurationMinutes: 60, Date: "2024-01-01"},
					{ID: "e2", DurationMinutes: 30, Date: "2024-01-02T10:00:00Z"},
				}},
			},
		},
		{ID: "p2", Name: "Idle", Color: "#00FF00"},
	}

	tt := buildTimeTracking(projects)

	require.Len(t, tt.ByProject, 1, "projects with no logged time are omitted")
	assert.Equal(t, "Launch", tt.ByProject[0].Name)
	assert.Equal(t, 1.5, tt.ByProject[0].Hours)
	assert.Equal(t, "#FF0000", tt.ByProject[0].Color)

	// The timestamped entry buckets under its date component.
	require.Len(t, tt.Daily, 2)
	assert.Equal(t, DailyTime{Date: "2024-01-01", Hours: 1.0}, tt.Daily[0])
	assert.Equal(t, DailyTime{Date: "2024-01-02", Hours: 0.5}, tt.Daily[1])
}

func TestBuildTimeTracking_DailyWindow(t *testing.T) {
	entries := make([]model.TimeEntry, 0, 15)
	for i := 1; i <= 15; i++ {
		entries = append(entries, model.TimeEntry{
			ID:              fmt.Sprintf("e%d", i),
			DurationMinutes: 60,
			Date:            fmt.Sprintf("2024-01-%02d", i),
		})
	}
	projects := []model.Project{
		{ID: "p1", Name: "Launch", Tasks: []model.Task{{ID: "t1", TimeEntries: entries}}},
	}

	tt := buildTimeTracking(projects)

	require.Len(t, tt.Daily, 14, "only the last 14 distinct dates survive")
	assert.Equal(t, "2024-01-02", tt.Daily[0].Date, "the oldest date is dropped")
	assert.Equal(t, "2024-01-15", tt.Daily[13].Date)
}

func TestBuildTimeTracking_Empty(t *testing.T) {
	tt := buildTimeTracking(nil)

	assert.NotNil(t, tt.ByProject)
	assert.NotNil(t, tt.Daily)
	assert.Empty(t, tt.ByProject)
	assert.Empty(t, tt.Daily)
}

func TestParseDeadline(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2030-01-01", true},
		{"2030-01-01T12:00:00", true},
		{"2030-01-01T12:00:00Z", true},
		{"2030-01-01T12:00:00.123456Z", true},
		{"tomorrow", false},
		{"", false},
	}
	for _, tc := range cases {
		_, ok := parseDeadline(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
	}
}
