package domain

import "time"

// Task represents a user-owned activity item.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

// StatusCount pairs a status with the number of tasks in it.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// TotalTasksKey names the aggregate entry appended to analytics results.
const TotalTasksKey = "TOTAL_TASKS"
