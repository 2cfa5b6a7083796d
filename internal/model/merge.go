package model

// MergeTask applies the non-nil fields of patch onto a copy of existing and
// returns it. completed_at is derived from the status transition: entering
// done from a non-done state stamps it with now, an explicit non-done status
// clears it, and an update without status leaves it alone.
func MergeTask(existing Task, patch TaskUpdate, now string) Task {
	t := existing

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.EstimatedHours != nil {
		t.EstimatedHours = patch.EstimatedHours
	}
	if patch.Status != nil {
		if *patch.Status == TaskDone && existing.Status != TaskDone {
			completedAt := now
			t.CompletedAt = &completedAt
		} else if *patch.Status != TaskDone {
			t.CompletedAt = nil
		}
		t.Status = *patch.Status
	}

	return t
}

// SetMilestoneCompleted toggles the completion flag and stamps or clears
// completed_at unconditionally, regardless of the prior state.
func SetMilestoneCompleted(m Milestone, completed bool, now string) Milestone {
	m.Completed = completed
	if completed {
		completedAt := now
		m.CompletedAt = &completedAt
	} else {
		m.CompletedAt = nil
	}
	return m
}
