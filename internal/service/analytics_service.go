package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
)

// ProjectLister is the read-only surface the aggregator needs.
type ProjectLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error)
}

// AnalyticsService computes cross-project summaries. Everything is recomputed
// per call from the owner's full project list; there is no caching.
type AnalyticsService struct {
	store ProjectLister
}

func NewAnalyticsService(store ProjectLister) *AnalyticsService {
	return &AnalyticsService{store: store}
}

type DeadlineItem struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Deadline    string `json:"deadline"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
}

type Overview struct {
	TotalProjects       int            `json:"total_projects"`
	ActiveProjects      int            `json:"active_projects"`
	CompletedProjects   int            `json:"completed_projects"`
	TotalTasks          int            `json:"total_tasks"`
	CompletedTasks      int            `json:"completed_tasks"`
	InProgressTasks     int            `json:"in_progress_tasks"`
	TodoTasks           int            `json:"todo_tasks"`
	TotalTimeHours      float64        `json:"total_time_hours"`
	TotalMilestones     int            `json:"total_milestones"`
	CompletedMilestones int            `json:"completed_milestones"`
	UpcomingDeadlines   []DeadlineItem `json:"upcoming_deadlines"`
	TaskCompletionRate  float64        `json:"task_completion_rate"`
}

type ProjectTime struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Color string  `json:"color"`
}

type DailyTime struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type TimeTracking struct {
	ByProject []ProjectTime `json:"by_project"`
	Daily     []DailyTime   `json:"daily"`
}

func (s *AnalyticsService) Overview(ctx context.Context, ownerID string) (*Overview, error) {
	projects, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return buildOverview(projects, time.Now().UTC()), nil
}

func (s *AnalyticsService) TimeTracking(ctx context.Context, ownerID string) (*TimeTracking, error) {
	projects, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return buildTimeTracking(projects), nil
}

func buildOverview(projects []model.Project, now time.Time) *Overview {
	o := &Overview{
		TotalProjects:     len(projects),
		UpcomingDeadlines: []DeadlineItem{},
	}

	totalMinutes := 0
	for _, p := range projects {
		switch p.Status {
		case model.ProjectActive:
			o.ActiveProjects++
		case model.ProjectCompleted:
			o.CompletedProjects++
		}

		o.TotalTasks += len(p.Tasks)
		for _, t := range p.Tasks {
			switch t.Status {
			case model.TaskDone:
				o.CompletedTasks++
			case model.TaskInProgress:
				o.InProgressTasks++
			}
			for _, te := range t.TimeEntries {
				totalMinutes += te.DurationMinutes
			}
		}

		o.TotalMilestones += len(p.Milestones)
		for _, m := range p.Milestones {
			if m.Completed {
				o.CompletedMilestones++
			}
		}

		// Unparsable deadline strings are skipped on purpose, never surfaced.
		if p.Deadline != nil {
			if d, ok := parseDeadline(*p.Deadline); ok && d.After(now) {
				o.UpcomingDeadlines = append(o.UpcomingDeadlines, DeadlineItem{
					Type:      "project",
					Name:      p.Name,
					Deadline:  *p.Deadline,
					ProjectID: p.ID,
				})
			}
		}
		for _, m := range p.Milestones {
			if m.Completed || m.DueDate == "" {
				continue
			}
			if d, ok := parseDeadline(m.DueDate); ok && d.After(now) {
				o.UpcomingDeadlines = append(o.UpcomingDeadlines, DeadlineItem{
					Type:        "milestone",
					Name:        m.Title,
					Deadline:    m.DueDate,
					ProjectID:   p.ID,
					ProjectName: p.Name,
				})
			}
		}
	}

	o.TodoTasks = o.TotalTasks - o.CompletedTasks - o.InProgressTasks
	o.TotalTimeHours = round1(float64(totalMinutes) / 60)
	if o.TotalTasks > 0 {
		o.TaskCompletionRate = round1(float64(o.CompletedTasks) / float64(o.TotalTasks) * 100)
	}

	// ISO-8601 strings sort lexicographically in chronological order, so the
	// raw strings are the sort key.
	sort.SliceStable(o.UpcomingDeadlines, func(i, j int) bool {
		return o.UpcomingDeadlines[i].Deadline < o.UpcomingDeadlines[j].Deadline
	})
	if len(o.UpcomingDeadlines) > 5 {
		o.UpcomingDeadlines = o.UpcomingDeadlines[:5]
	}

	return o
}

func buildTimeTracking(projects []model.Project) *TimeTracking {
	tt := &TimeTracking{
		ByProject: []ProjectTime{},
		Daily:     []DailyTime{},
	}

	dailyMinutes := map[string]int{}
	for _, p := range projects {
		projectMinutes := 0
		for _, t := range p.Tasks {
			for _, te := range t.TimeEntries {
				projectMinutes += te.DurationMinutes
				if day := datePart(te.Date); day != "" {
					dailyMinutes[day] += te.DurationMinutes
				}
			}
		}

		if projectMinutes > 0 {
			tt.ByProject = append(tt.ByProject, ProjectTime{
				Name:  p.Name,
				Hours: round1(float64(projectMinutes) / 60),
				Color: p.Color,
			})
		}
	}

	days := make([]string, 0, len(dailyMinutes))
	for day := range dailyMinutes {
		days = append(days, day)
	}
	sort.Strings(days)

	// Last 14 distinct dates that have entries, not a calendar window.
	if len(days) > 14 {
		days = days[len(days)-14:]
	}
	for _, day := range days {
		tt.Daily = append(tt.Daily, DailyTime{
			Date:  day,
			Hours: round1(float64(dailyMinutes[day]) / 60),
		})
	}

	return tt
}

var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDeadline accepts the ISO-8601 shapes clients send: full timestamps
// with or without zone, or a bare date. Anything else is not a deadline.
func parseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func datePart(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
