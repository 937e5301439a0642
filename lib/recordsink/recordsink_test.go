package recordsink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSinkAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "schedules.csv")
	header := []string{"a", "b"}

	sink, err := Open(path, header)
	require.NoError(t, err)
	require.NoError(t, sink.WriteRows([][]string{{"1", "x, y"}}))
	require.NoError(t, sink.Close())

	sink, err = Open(path, header)
	require.NoError(t, err)
	require.NoError(t, sink.WriteRows([][]string{{"2", `{"k":"v"}`}}))
	require.NoError(t, sink.WriteRows(nil))
	require.Equal(t, 1, sink.Rows())
	require.NoError(t, sink.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,\"x, y\"\n2,\"{\"\"k\"\":\"\"v\"\"}\"\n", string(contents))
}

func TestSinkConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	sink, err := New(&buf, []string{"n", "m"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n := fmt.Sprint(i)
			require.NoError(t, sink.WriteRows([][]string{{n, n}, {n, n}}))
		}(i)
	}
	wg.Wait()
	require.NoError(t, sink.Close())
	require.Equal(t, 40, sink.Rows())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 41)
	// rows of one call stay adjacent
	for i := 1; i < len(lines); i += 2 {
		require.Equal(t, string(lines[i]), string(lines[i+1]))
	}
}
