package queue

// TypeImportPostsCSV is the task type consumed by the import worker process.
const TypeImportPostsCSV = "csv:import"

// ImportPostsPayload is the wire form of an import job: the spilled upload
// and the submitter, whose id becomes the default owner of imported rows.
type ImportPostsPayload struct {
	SourcePath   string `json:"source_path"`
	ActingUserID int64  `json:"acting_user_id"`
}
