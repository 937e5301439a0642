package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ferry-scraper/lib/checkpoint/db"
	"ferry-scraper/lib/sqliteutil"
	"ferry-scraper/lib/timezone"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ferry.lib.checkpoint")

// Task identifies one search, a date and a directed pair of locations.
type Task struct {
	Date        string
	Origin      string
	Destination string
}

func (t Task) String() string {
	return fmt.Sprintf("%s: %s -> %s", t.Date, t.Origin, t.Destination)
}

// Store remembers which tasks have completed so an interrupted scrape can
// resume without repeating searches.
type Store struct {
	db    *sql.DB
	qry   *db.Queries
	runId string
}

// Open opens (or creates) the store at `path` and starts a new run. `config`
// is saved alongside the run for later inspection.
func Open(ctx context.Context, path, config string) (*Store, error) {
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint store: %w", err)
	}
	return New(ctx, database, config)
}

// New starts a run on an already opened database with the schema applied.
func New(ctx context.Context, database *sql.DB, config string) (*Store, error) {
	s := &Store{
		db:    database,
		qry:   db.New(database),
		runId: uuid.NewString(),
	}
	err := s.qry.CreateRun(ctx, db.CreateRunParams{
		ID:        s.runId,
		StartedAt: timezone.Now().Unix(),
		Config:    config,
	})
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return s, nil
}

func (s *Store) RunID() string {
	return s.runId
}

// Lookup returns whether a task has completed and how many records it produced.
func (s *Store) Lookup(ctx context.Context, task Task) (records int64, done bool, err error) {
	row, err := s.qry.GetCompletedTask(ctx, db.GetCompletedTaskParams{
		SearchDate:  task.Date,
		Origin:      task.Origin,
		Destination: task.Destination,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.Records, true, nil
}

// Pending filters out the tasks that have already completed, order is kept.
func (s *Store) Pending(ctx context.Context, tasks []Task) ([]Task, error) {
	ctx, span := tracer.Start(ctx, "Pending")
	defer span.End()

	completed, err := s.qry.GetCompletedTasks(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[Task]struct{}, len(completed))
	for _, row := range completed {
		done[Task{Date: row.SearchDate, Origin: row.Origin, Destination: row.Destination}] = struct{}{}
	}

	pending := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := done[t]; ok {
			continue
		}
		pending = append(pending, t)
	}
	return pending, nil
}

// MarkDone records a completed task, marking it again overwrites the count.
func (s *Store) MarkDone(ctx context.Context, task Task, records int) error {
	return s.qry.MarkTaskDone(ctx, db.MarkTaskDoneParams{
		SearchDate:  task.Date,
		Origin:      task.Origin,
		Destination: task.Destination,
		Records:     int64(records),
		RunID:       s.runId,
		CompletedAt: timezone.Now().Unix(),
	})
}

// RunRecords is the number of records produced by tasks completed in this run.
func (s *Store) RunRecords(ctx context.Context) (int64, error) {
	return s.qry.CountRunRecords(ctx, s.runId)
}

// Completed lists every completed task across runs.
func (s *Store) Completed(ctx context.Context) ([]db.CompletedTask, error) {
	return s.qry.GetCompletedTasks(ctx)
}

// Reset forgets every completed task.
func (s *Store) Reset(ctx context.Context) error {
	return s.qry.DeleteCompletedTasks(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CompletedAt converts a stored completion timestamp.
func CompletedAt(row db.CompletedTask) time.Time {
	return time.Unix(row.CompletedAt, 0).In(timezone.Location)
}
