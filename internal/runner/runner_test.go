package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"ferry-scraper/lib/checkpoint"
	"ferry-scraper/lib/routecache"
	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func resultPage(origin, destination string, cards int) string {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	for i := 0; i < cards; i++ {
		fmt.Fprintf(
			&b,
			`<div class="tableout"><div class="form-to">`+
				`<div class="witwo"><p class="location">%s</p><h5 class="time">0%d:00</h5></div>`+
				`<div class="withree"><p class="location">%s</p></div>`+
				`</div><div class="wifive"><span>THB %d00</span></div></div>`,
			origin, i, destination, i+1,
		)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

type fakeSource struct {
	mutex sync.Mutex
	cards map[string]int
	fail  map[string]bool
	calls map[string]int
}

func newFakeSource(cards map[string]int, fail ...string) *fakeSource {
	s := &fakeSource{cards: cards, fail: map[string]bool{}, calls: map[string]int{}}
	for _, f := range fail {
		s.fail[f] = true
	}
	return s
}

func (s *fakeSource) Search(ctx context.Context, q phanganferries.SearchQuery) (string, error) {
	route := q.From + "->" + q.To
	s.mutex.Lock()
	s.calls[q.Date+" "+route]++
	failing := s.fail[route]
	cards := s.cards[route]
	s.mutex.Unlock()

	if failing {
		return "", errors.New("connection reset")
	}
	return resultPage(q.From, q.To, cards), nil
}

func (s *fakeSource) Calls(key string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.calls[key]
}

type fakeSink struct {
	mutex sync.Mutex
	rows  [][]string
}

func (s *fakeSink) WriteRows(rows [][]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.rows = append(s.rows, rows...)
	return nil
}

type fixture struct {
	store  *checkpoint.Store
	routes *routecache.Cache
	sink   *fakeSink
	tel    *telemetry.Recorder
}

func newFixture(t *testing.T) fixture {
	store, err := checkpoint.Open(context.Background(), ":memory:", "{}")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return fixture{
		store:  store,
		routes: routecache.New(filepath.Join(t.TempDir(), "routes.json")),
		sink:   &fakeSink{},
		tel:    &telemetry.Recorder{},
	}
}

func (f fixture) runner(source PageSource, opts Options) *Runner {
	return New(source, f.sink, f.store, f.routes, f.tel, opts)
}

var options = Options{
	Dates:     []string{"08 Feb, 2025", "09 Feb, 2025"},
	Locations: []string{"A", "B", "C"},
	Adults:    1,
	Workers:   3,
}

func TestRunValidatesRoutesAndResumes(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:runner")
	defer cleanup()

	f := newFixture(t)
	source := newFakeSource(map[string]int{"A->B": 2, "B->A": 1}, "C->A")

	summary, err := f.runner(source, options).Run(context.Background())
	require.NoError(t, err)

	// 6 probes on the first date, then C->A (failed probe) on the first date
	// and A->B, B->A, C->A, C->B on the second.
	require.Equal(t, 11, summary.Tasks)
	require.Equal(t, 6, summary.Records)
	require.Len(t, summary.Failed, 3)
	require.Len(t, f.sink.rows, 6)

	require.True(t, f.routes.Valid("A", "B"))
	require.False(t, f.routes.Valid("A", "C"))
	require.True(t, f.routes.Known("B"))
	require.False(t, f.routes.Known("C"))

	// probes are not repeated as tasks
	require.Equal(t, 1, source.Calls("08 Feb, 2025 A->B"))
	require.Equal(t, 0, source.Calls("09 Feb, 2025 A->C"))
	require.Len(t, f.tel.Reports("broken"), 3)

	// C->A recovers, only what is left is run again
	source = newFakeSource(map[string]int{"A->B": 2, "B->A": 1, "C->A": 1})
	summary, err = f.runner(source, options).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, summary.Tasks)
	require.Equal(t, 2, summary.Records)
	require.Empty(t, summary.Failed)
	require.Equal(t, 0, source.Calls("08 Feb, 2025 C->B"))
	require.Equal(t, 1, source.Calls("09 Feb, 2025 C->A"))
	require.True(t, f.routes.Valid("C", "A"))
	require.False(t, f.routes.Valid("C", "B"))
	require.Len(t, f.sink.rows, 8)
}

func TestRunUsesCachedRoutes(t *testing.T) {
	f := newFixture(t)
	for _, origin := range options.Locations {
		f.routes.Set(origin, nil)
	}
	f.routes.Set("A", []string{"C"})

	source := newFakeSource(map[string]int{"A->C": 1})
	summary, err := f.runner(source, options).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, summary.Tasks)
	require.Equal(t, 2, summary.Records)

	rows := f.sink.rows
	require.Len(t, rows, 2)
	require.Equal(t, "A", rows[0][1])
	require.Equal(t, "C", rows[0][2])
}

type blockingSource struct{}

func (blockingSource) Search(ctx context.Context, _ phanganferries.SearchQuery) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRunTaskTimeout(t *testing.T) {
	f := newFixture(t)
	f.routes.Set("A", []string{"B"})
	f.routes.Set("B", nil)

	opts := Options{
		Dates:       []string{"08 Feb, 2025"},
		Locations:   []string{"A", "B"},
		Workers:     2,
		TaskTimeout: 20 * time.Millisecond,
	}
	summary, err := f.runner(blockingSource{}, opts).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Tasks)
	require.Equal(t, []checkpoint.Task{{Date: "08 Feb, 2025", Origin: "A", Destination: "B"}}, summary.Failed)

	pending, err := f.store.Pending(context.Background(), summary.Failed)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestRunCancelled(t *testing.T) {
	f := newFixture(t)
	for _, origin := range options.Locations {
		f.routes.Set(origin, []string{"A", "B", "C"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.runner(newFakeSource(nil), options).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTasksSkipsSameLocation(t *testing.T) {
	f := newFixture(t)
	opts := Options{Dates: []string{"d1"}, Locations: []string{"A", "B"}}
	tasks, err := f.runner(newFakeSource(nil), opts).Tasks(context.Background())
	require.NoError(t, err)
	require.Equal(t, []checkpoint.Task{
		{Date: "d1", Origin: "A", Destination: "B"},
		{Date: "d1", Origin: "B", Destination: "A"},
	}, tasks)
}
