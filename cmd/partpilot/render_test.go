package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
)

func TestRenderOutcome(t *testing.T) {
	res := domsearch.Outcome{
		Query:     "brake pads",
		FromCache: true,
		Results: []part.Part{
			{
				Name:          "Front Brake Pads",
				OEMPartNumber: "BP-1",
				MSRPPrice:     optional.Of(1039.99),
				Manufacturer:  "Motorcraft",
				IsGenuineOEM:  true,
				Supersession:  optional.Of(part.Supersession{NewPartNumber: "BP-2", Reason: "revised compound"}),
				PurchaseLinks: []part.PurchaseLink{{Store: "Amazon", URL: "https://www.amazon.com/dp/BP1"}},
			},
			{Name: "Hardware Kit"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderOutcome(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "Offline: showing cached results")
	assert.Contains(t, out, "Front Brake Pads")
	assert.Contains(t, out, "BP-1")
	assert.Contains(t, out, "genuine OEM")
	assert.Contains(t, out, "Superseded by BP-2 (revised compound)")
	assert.Contains(t, out, "Amazon: https://www.amazon.com/dp/BP1")
	assert.Contains(t, out, "2 parts, $1,039.99 total MSRP")
}

func TestRenderOutcome_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderOutcome(&buf, domsearch.Outcome{Query: "flux capacitor"}))
	assert.Equal(t, "No parts found for \"flux capacitor\".\n", buf.String())
}

func TestRenderCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []domsearch.CachedEntry{
		{Query: "oil filter", Results: make([]part.Part, 3), Timestamp: now.Add(-2 * time.Hour).UnixMilli()},
	}

	var buf bytes.Buffer
	require.NoError(t, renderCache(&buf, entries, now))
	out := buf.String()
	assert.Contains(t, out, "oil filter")
	assert.Contains(t, out, "3 parts")
	assert.Contains(t, out, "2 hours ago")
	assert.Equal(t, 1, strings.Count(out, "\n"))

	buf.Reset()
	require.NoError(t, renderCache(&buf, nil, now))
	assert.Equal(t, "No cached searches.\n", buf.String())
}

func TestSearchOptionsVehicle(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	v, err := (&searchOptions{}).vehicle(now)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = (&searchOptions{year: 2019, mk: "Ford", model: "F-150"}).vehicle(now)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2019 Ford F-150", v.Describe())

	_, err = (&searchOptions{mk: "Ford"}).vehicle(now)
	assert.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"serve"}, {"search"}, {"cache", "list"}, {"cache", "clear"}, {"version"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	search, _, err := root.Find([]string{"search"})
	require.NoError(t, err)
	for _, name := range []string{"year", "make", "model", "engine", "offline", "json"} {
		assert.NotNil(t, search.Flags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "partpilot dev"))
}
