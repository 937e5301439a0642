package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchName(t *testing.T) {
	cases := []struct {
		name     string
		matchers []string
		expect   bool
	}{
		{name: "  Adult  Price ", matchers: []string{"adult"}, expect: true},
		{name: "Child (2-11 yrs)", matchers: []string{"adult", "child"}, expect: true},
		{name: "Infant", matchers: []string{"adult", "child"}, expect: false},
		{name: "Same\n Bus", matchers: []string{"samebus"}, expect: true},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, MatchName(test.name, test.matchers), test.name)
	}
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "Koh Tao Pier", CollapseSpace("\n\t Koh   Tao\n   Pier  "))
	require.Equal(t, "", CollapseSpace(" \n "))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "lomprayah", Truncate("lomprayah", 9))
	require.Equal(t, "lomprayah"[:8], Truncate("lomprayah", 8))
	require.Equal(t, "ส้ม", Truncate("ส้มตำ", 3))
	require.Equal(t, "", Truncate("abc", 0))
}
