package model

// Todo priority levels.
const (
	PriorityNormal    = 0
	PriorityImportant = 1
	PriorityUrgent    = 2
)

// Todo is a single task item. Timestamps are epoch milliseconds.
// DoneAt is set exactly when IsDone is true and nil otherwise.
type Todo struct {
	ID        string `json:"id" db:"id"`
	Content   string `json:"content" db:"content"`
	IsDone    bool   `json:"is_done" db:"is_done"`
	Priority  int    `json:"priority" db:"priority"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	DoneAt    *int64 `json:"done_at" db:"done_at"`
}

// ArchivedTodo is a snapshot of a completed todo moved out of the live
// table after the retention window. It shares the original todo's ID.
type ArchivedTodo struct {
	ID         string `json:"id" db:"id"`
	Content    string `json:"content" db:"content"`
	Priority   int    `json:"priority" db:"priority"`
	CreatedAt  int64  `json:"created_at" db:"created_at"`
	DoneAt     int64  `json:"done_at" db:"done_at"`
	ArchivedAt int64  `json:"archived_at" db:"archived_at"`
}
