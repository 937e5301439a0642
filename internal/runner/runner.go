package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ferry-scraper/lib/checkpoint"
	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/telemetry"
	"ferry-scraper/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("ferry.internal.runner")

const (
	report_runner_task          = "runner.task"
	report_runner_sink          = "runner.sink"
	report_runner_checkpoint    = "runner.checkpoint"
	report_runner_route_probe   = "runner.route.probe"
	report_runner_route_save    = "runner.route.save"
	report_runner_tasks_pending = "runner.tasks.pending"
	report_runner_tasks_done    = "runner.tasks.done"
)

// PageSource fetches search result pages.
type PageSource interface {
	Search(ctx context.Context, q phanganferries.SearchQuery) (string, error)
}

// Sink receives the csv rows of every task.
type Sink interface {
	WriteRows(rows [][]string) error
}

// Checkpoint remembers completed tasks between runs.
type Checkpoint interface {
	Lookup(ctx context.Context, task checkpoint.Task) (records int64, done bool, err error)
	Pending(ctx context.Context, tasks []checkpoint.Task) ([]checkpoint.Task, error)
	MarkDone(ctx context.Context, task checkpoint.Task, records int) error
}

// RouteCache remembers which destinations each origin serves.
type RouteCache interface {
	Known(origin string) bool
	Valid(origin, destination string) bool
	Set(origin string, destinations []string)
	Save() error
}

type Options struct {
	// Dates are journey dates, ex. "08 Feb, 2025", the first one is used to
	// probe routes.
	Dates        []string
	Locations    []string
	Adults       int
	Children     int
	ChildrenAges []int
	Workers      int
	TaskTimeout  time.Duration
}

type Summary struct {
	// Tasks is the number of tasks that were scheduled in this run.
	Tasks   int
	Records int
	Failed  []checkpoint.Task
}

type Runner struct {
	source     PageSource
	parser     phanganferries.Parser
	sink       Sink
	checkpoint Checkpoint
	routes     RouteCache
	tel        telemetry.API
	opts       Options

	mutex   sync.Mutex
	summary Summary
}

func New(
	source PageSource,
	sink Sink,
	checkpoint Checkpoint,
	routes RouteCache,
	tel telemetry.API,
	opts Options,
) *Runner {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		source:     source,
		parser:     phanganferries.NewParser(tel),
		sink:       sink,
		checkpoint: checkpoint,
		routes:     routes,
		tel:        telemetry.NewScopedAPI("runner", tel),
		opts:       opts,
	}
}

func sameLocation(a, b string) bool {
	return textutil.NormalizeName(a) == textutil.NormalizeName(b)
}

func (r *Runner) query(task checkpoint.Task) phanganferries.SearchQuery {
	return phanganferries.SearchQuery{
		From:         task.Origin,
		To:           task.Destination,
		Date:         task.Date,
		Adults:       r.opts.Adults,
		Children:     r.opts.Children,
		ChildrenAges: r.opts.ChildrenAges,
	}
}

// runTask fetches and parses a single search, writes its rows to the sink
// and marks it done. Zero records with a nil error means the route simply
// has no trips that day.
func (r *Runner) runTask(ctx context.Context, task checkpoint.Task) (int, error) {
	ctx, span := tracer.Start(ctx, "runTask")
	defer span.End()
	span.SetAttributes(
		attribute.String("custom.date", task.Date),
		attribute.String("custom.origin", task.Origin),
		attribute.String("custom.destination", task.Destination),
	)

	if r.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.TaskTimeout)
		defer cancel()
	}

	page, err := r.source.Search(ctx, r.query(task))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return 0, err
	}
	records, err := r.parser.ParsePage(ctx, page, task.Date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return 0, err
	}

	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Row()
	}
	err = r.sink.WriteRows(rows)
	if err != nil {
		r.tel.ReportBroken(report_runner_sink, err, task.String())
		return 0, fmt.Errorf("write rows: %w", err)
	}

	err = r.checkpoint.MarkDone(ctx, task, len(records))
	if err != nil {
		// the rows are already written, a rerun will repeat them.
		r.tel.ReportBroken(report_runner_checkpoint, err, task.String())
	}

	span.SetAttributes(attribute.Int("custom.records", len(records)))
	return len(records), nil
}

func (r *Runner) record(task checkpoint.Task, records int, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.summary.Tasks++
	if err != nil {
		r.summary.Failed = append(r.summary.Failed, task)
		return
	}
	r.summary.Records += records
}

// each runs fn over the tasks on the worker pool. fn errors are not
// propagated, only cancellation of the parent context stops the pool.
func (r *Runner) each(ctx context.Context, tasks []checkpoint.Task, fn func(ctx context.Context, task checkpoint.Task)) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.opts.Workers)
	for _, task := range tasks {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			fn(groupCtx, task)
			return nil
		})
	}
	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return err
}

func (r *Runner) execute(ctx context.Context, task checkpoint.Task) (int, error) {
	records, err := r.runTask(ctx, task)
	if err != nil {
		r.tel.ReportBroken(report_runner_task, err, task.String())
	} else {
		r.tel.ReportDebug("task done", task.String(), records)
	}
	r.record(task, records, err)
	return records, err
}

func (r *Runner) probe(ctx context.Context, task checkpoint.Task) (int, error) {
	records, done, err := r.checkpoint.Lookup(ctx, task)
	if err != nil {
		r.tel.ReportWarning(report_runner_checkpoint, err, task.String())
	}
	if err == nil && done {
		return int(records), nil
	}
	return r.execute(ctx, task)
}

// ValidateRoutes probes every destination of origins missing from the route
// cache on the first date. Probes are ordinary tasks, their records are kept
// and probes completed by an earlier run are answered from the checkpoint.
// An origin with a failed probe is not cached so it is probed again next run.
func (r *Runner) ValidateRoutes(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ValidateRoutes")
	defer span.End()

	if len(r.opts.Dates) == 0 {
		return nil
	}
	date := r.opts.Dates[0]

	var probes []checkpoint.Task
	for _, origin := range r.opts.Locations {
		if r.routes.Known(origin) {
			continue
		}
		for _, destination := range r.opts.Locations {
			if sameLocation(origin, destination) {
				continue
			}
			probes = append(probes, checkpoint.Task{Date: date, Origin: origin, Destination: destination})
		}
	}
	if len(probes) == 0 {
		return nil
	}

	type probeResult struct {
		valid  []string
		failed bool
	}
	var mutex sync.Mutex
	results := map[string]*probeResult{}
	for _, probe := range probes {
		results[probe.Origin] = &probeResult{}
	}

	err := r.each(ctx, probes, func(ctx context.Context, task checkpoint.Task) {
		records, err := r.probe(ctx, task)
		mutex.Lock()
		defer mutex.Unlock()
		result := results[task.Origin]
		if err != nil {
			result.failed = true
			r.tel.ReportWarning(report_runner_route_probe, err, task.String())
			return
		}
		if records > 0 {
			result.valid = append(result.valid, task.Destination)
		}
	})
	if err != nil {
		return err
	}

	for origin, result := range results {
		if result.failed {
			continue
		}
		r.routes.Set(origin, result.valid)
	}
	err = r.routes.Save()
	if err != nil {
		r.tel.ReportBroken(report_runner_route_save, err)
		return fmt.Errorf("save route cache: %w", err)
	}
	return nil
}

// Tasks expands dates and valid routes into the tasks that still have to run.
func (r *Runner) Tasks(ctx context.Context) ([]checkpoint.Task, error) {
	var tasks []checkpoint.Task
	for _, date := range r.opts.Dates {
		for _, origin := range r.opts.Locations {
			for _, destination := range r.opts.Locations {
				if sameLocation(origin, destination) {
					continue
				}
				// unprobed origins (failed probes) are searched blindly
				if r.routes.Known(origin) && !r.routes.Valid(origin, destination) {
					continue
				}
				tasks = append(tasks, checkpoint.Task{Date: date, Origin: origin, Destination: destination})
			}
		}
	}
	return r.checkpoint.Pending(ctx, tasks)
}

// Run validates routes, then works through every pending task.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	err := r.ValidateRoutes(ctx)
	if err != nil {
		return r.Summary(), err
	}

	tasks, err := r.Tasks(ctx)
	if err != nil {
		return r.Summary(), fmt.Errorf("list pending tasks: %w", err)
	}
	r.tel.ReportCount(report_runner_tasks_pending, int64(len(tasks)))

	err = r.each(ctx, tasks, func(ctx context.Context, task checkpoint.Task) {
		r.execute(ctx, task)
	})

	summary := r.Summary()
	r.tel.ReportCount(report_runner_tasks_done, int64(summary.Tasks))
	span.SetAttributes(
		attribute.Int("custom.tasks", summary.Tasks),
		attribute.Int("custom.records", summary.Records),
		attribute.Int("custom.failed", len(summary.Failed)),
	)
	if errors.Is(err, context.Canceled) {
		return summary, fmt.Errorf("run interrupted: %w", err)
	}
	return summary, err
}

func (r *Runner) Summary() Summary {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	summary := r.summary
	summary.Failed = append([]checkpoint.Task(nil), r.summary.Failed...)
	return summary
}
