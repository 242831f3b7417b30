package post

// ImportStatus is the terminal-state enum published to the progress store.
// PENDING doubles as the answer for job ids the store has never seen.
type ImportStatus string

const (
	ImportPending ImportStatus = "PENDING"
	ImportSuccess ImportStatus = "SUCCESS"
	ImportFailure ImportStatus = "FAILURE"
)

// ImportJob is the unit of work handed from the submission endpoint to the
// worker. It is never persisted to the relational store; the task queue owns
// its lifetime.
type ImportJob struct {
	ID           string
	SourcePath   string
	ActingUserID int64
}

// RowLastBatch marks an error produced by a failed batch commit rather than
// a single input line.
const RowLastBatch = "last_batch"

// RowError is one entry of a job's error list. Row holds the 1-indexed line
// number for row-level errors, RowLastBatch for batch commit failures, and
// stays empty for job-level errors.
type RowError struct {
	Row   any    `json:"row,omitempty"`
	Error string `json:"error"`
}

// ProgressSnapshot is what the polling endpoint reads back.
type ProgressSnapshot struct {
	Progress int
	Status   ImportStatus
	Errors   []RowError
}
