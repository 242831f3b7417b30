package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

var requiredColumns = []string{"title", "description", "status", "created_user_id", "updated_user_id"}

type titleLookup interface {
	TitleExists(ctx context.Context, title string, excludeID int64) (bool, error)
}

type WorkerConfig struct {
	BatchSize int
}

// Worker turns an uploaded CSV into persisted posts. It is the single writer
// of the job's progress keys; the polling endpoint is the only reader.
type Worker struct {
	source   domain.UploadSource
	posts    titleLookup
	bulk     domain.BulkWriter
	progress domain.ProgressStore
	cfg      WorkerConfig
	log      *logrus.Logger
}

func NewWorker(source domain.UploadSource, posts titleLookup, bulk domain.BulkWriter, progress domain.ProgressStore, cfg WorkerConfig, log *logrus.Logger) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Worker{
		source:   source,
		posts:    posts,
		bulk:     bulk,
		progress: progress,
		cfg:      cfg,
		log:      log,
	}
}

// Run processes one import job to a terminal status. Row- and batch-level
// failures are recorded and the job continues; anything else is captured
// into the progress store and returned so the task runner can apply its
// retry policy.
func (w *Worker) Run(ctx context.Context, job domain.ImportJob) error {
	log := w.log.WithField("job_id", job.ID)

	reader, err := w.source.Open(ctx, job.SourcePath)
	if err != nil {
		// The job runs detached, so a missing file is reported through the
		// store instead of the return value.
		log.WithError(err).Warn("import source not found")
		w.finishFailure(ctx, job.ID, []domain.RowError{{Error: "File not found"}})
		return nil
	}
	defer w.source.Remove(context.WithoutCancel(ctx), job.SourcePath)
	defer reader.Close()

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		w.finishFailure(ctx, job.ID, []domain.RowError{{Error: "CSV is empty"}})
		return nil
	}

	columns, missing := indexColumns(header)
	if len(missing) > 0 {
		w.finishFailure(ctx, job.ID, []domain.RowError{{
			Error: "missing required columns: " + strings.Join(missing, ", "),
		}})
		return nil
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return w.abort(ctx, job.ID, fmt.Errorf("read csv: %w", err))
	}
	total := len(rows)
	if total == 0 {
		w.finishFailure(ctx, job.ID, []domain.RowError{{Error: "CSV is empty"}})
		return nil
	}

	var rowErrors []domain.RowError
	seen := make(map[string]struct{}, total)
	batch := make([]domain.Post, 0, w.cfg.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := w.bulk.InsertBatch(ctx, batch); err != nil {
			if !errors.Is(err, domain.ErrBatchConflict) {
				return err
			}
			rowErrors = append(rowErrors, domain.RowError{
				Row:   domain.RowLastBatch,
				Error: truncateReason(err.Error()),
			})
		}
		batch = batch[:0]
		return nil
	}

	for i, row := range rows {
		idx := i + 1

		staged, rowErr, err := w.evaluateRow(ctx, row, columns, seen, job.ActingUserID)
		if err != nil {
			return w.abort(ctx, job.ID, fmt.Errorf("row %d: %w", idx, err))
		}
		if rowErr != "" {
			rowErrors = append(rowErrors, domain.RowError{Row: idx, Error: rowErr})
		} else {
			batch = append(batch, staged)
			if len(batch) >= w.cfg.BatchSize {
				if err := flush(); err != nil {
					return w.abort(ctx, job.ID, fmt.Errorf("flush batch: %w", err))
				}
			}
		}

		if err := w.progress.SetProgress(ctx, job.ID, idx*100/total); err != nil {
			return w.abort(ctx, job.ID, fmt.Errorf("write progress: %w", err))
		}
	}

	if err := flush(); err != nil {
		return w.abort(ctx, job.ID, fmt.Errorf("flush last batch: %w", err))
	}

	if len(rowErrors) > 0 {
		log.WithField("errors", len(rowErrors)).Info("import finished with errors")
		w.finishFailure(ctx, job.ID, rowErrors)
		return nil
	}

	if err := w.progress.SetStatus(ctx, job.ID, domain.ImportSuccess); err != nil {
		return w.abort(ctx, job.ID, fmt.Errorf("write status: %w", err))
	}
	if err := w.progress.SetProgress(ctx, job.ID, 100); err != nil {
		return w.abort(ctx, job.ID, fmt.Errorf("write progress: %w", err))
	}
	log.WithField("rows", total).Info("import finished")
	return nil
}

// evaluateRow applies the per-row checks in order: in-file duplicate first
// (no store round trip), then the persisted-title lookup, then the status
// range. A non-empty reason means the row is skipped.
func (w *Worker) evaluateRow(ctx context.Context, row []string, columns map[string]int, seen map[string]struct{}, actingUserID int64) (domain.Post, string, error) {
	title := strings.TrimSpace(field(row, columns["title"]))

	if _, dup := seen[title]; dup {
		return domain.Post{}, "title duplicated", nil
	}
	seen[title] = struct{}{}

	exists, err := w.posts.TitleExists(ctx, title, 0)
	if err != nil {
		return domain.Post{}, "", fmt.Errorf("title lookup: %w", err)
	}
	if exists {
		return domain.Post{}, "title already taken", nil
	}

	status, err := strconv.Atoi(strings.TrimSpace(field(row, columns["status"])))
	if err != nil || !domain.ValidStatus(status) {
		return domain.Post{}, "status must be 0 or 1", nil
	}

	staged, err := domain.NewPost(
		title,
		field(row, columns["description"]),
		status,
		parseUserID(field(row, columns["created_user_id"]), actingUserID),
		parseUserID(field(row, columns["updated_user_id"]), actingUserID),
	)
	if err != nil {
		return domain.Post{}, err.Error(), nil
	}

	now := time.Now()
	staged.CreatedAt = parseTimestamp(optionalField(row, columns, "created_at"), now)
	staged.UpdatedAt = parseTimestamp(optionalField(row, columns, "updated_at"), now)
	return staged, "", nil
}

func (w *Worker) finishFailure(ctx context.Context, jobID string, errs []domain.RowError) {
	if err := w.progress.SetErrors(ctx, jobID, errs); err != nil {
		w.log.WithField("job_id", jobID).WithError(err).Error("write import errors")
	}
	if err := w.progress.SetStatus(ctx, jobID, domain.ImportFailure); err != nil {
		w.log.WithField("job_id", jobID).WithError(err).Error("write import status")
	}
}

// abort records an unclassified failure so the polling client always sees a
// terminal status, then hands the error back to the task runner.
func (w *Worker) abort(ctx context.Context, jobID string, err error) error {
	w.finishFailure(context.WithoutCancel(ctx), jobID, []domain.RowError{{Error: truncateReason(err.Error())}})
	return err
}

// indexColumns maps required and optional column names to their positions.
// Header matching is case-insensitive.
func indexColumns(header []string) (map[string]int, []string) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int, len(requiredColumns)+2)
	var missing []string
	for _, name := range requiredColumns {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = pos
	}
	for _, name := range []string{"created_at", "updated_at"} {
		if pos, ok := positions[name]; ok {
			columns[name] = pos
		}
	}
	return columns, missing
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func optionalField(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok {
		return ""
	}
	return field(row, idx)
}

func parseUserID(raw string, fallback int64) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return fallback
	}
	return id
}

var timestampLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseTimestamp(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return fallback
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
