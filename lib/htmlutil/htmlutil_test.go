package htmlutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `<div>
	<p class="addr">
		Mae Haad Pier,
		Koh Tao<br><span>Check-in 30 min before</span>
	</p>
	<p class="empty"></p>
	<p class="lead"><b>07:30</b> departs</p>
	<h4>  Koh
	  Phangan </h4>
</div>`

func TestTextHelpers(t *testing.T) {
	doc, err := ParseDocument(context.Background(), fixture)
	require.NoError(t, err)

	require.Equal(t, "Koh Phangan", Text(doc.Find("h4")))
	require.Equal(t, "", Text(doc.Find("h3")))
	require.Equal(t, "N/A", TextOr(doc.Find("p.empty"), "N/A"))

	addr, ok := FirstChildText(doc.Find("p.addr"))
	require.True(t, ok)
	require.Equal(t, "Mae Haad Pier, Koh Tao", addr)

	lead, ok := FirstChildText(doc.Find("p.lead"))
	require.True(t, ok)
	require.Equal(t, "07:30", lead)

	_, ok = FirstChildText(doc.Find("p.empty"))
	require.False(t, ok)

	require.True(t, HasAny(doc.Selection, "span"))
	require.False(t, HasAny(doc.Selection, "table"))
}
