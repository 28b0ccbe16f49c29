package models

// Task statuses shown in the status dropdown.
const (
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusUnassigned = "Unassigned"
)

// DateLayout is the calendar-date format used for due dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MaxTaskNameLen bounds the task name column.
const MaxTaskNameLen = 64

// Task is a unit of work on the shared board. The assignee is a weak
// reference: deleting the user clears it instead of cascading.
type Task struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	AssignedUserID *int    `json:"assigned_user_id,omitempty"`
	Status         string  `json:"status"`
	DueDate        *string `json:"due_date,omitempty"` // YYYY-MM-DD
}

// Statuses returns the allowed status values in display order.
func Statuses() []string {
	return []string{StatusInProgress, StatusCompleted, StatusUnassigned}
}

// IsValidStatus reports whether s is one of the three allowed statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusUnassigned:
		return true
	}
	return false
}
