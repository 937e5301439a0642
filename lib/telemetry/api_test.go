package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPIPrefixesIds(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("phanganferries", rec)

	scoped.ReportWarning("card.parse", "missing form-to", 2)
	scoped.ReportBroken("client.search", "timeout")
	scoped.ReportCount("cards", 4)

	warnings := rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "phanganferries:card.parse", warnings[0].ID)
	require.Equal(t, []any{"missing form-to", 2}, warnings[0].Params)

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "phanganferries:client.search", broken[0].ID)

	counts := rec.Reports("count")
	require.Len(t, counts, 1)
	require.Equal(t, []any{int64(4)}, counts[0].Params)
}
