package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	name     string
	platform string
	mode     Mode
	result   *Result
	err      error
	calls    int
}

func (s *stubCollector) Name() string     { return s.name }
func (s *stubCollector) Platform() string { return s.platform }
func (s *stubCollector) Mode() Mode       { return s.mode }

func (s *stubCollector) Collect(ctx context.Context) (*Result, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.result, s.err
}

func newRegistryWithStubs() (*Registry, []*stubCollector) {
	stubs := []*stubCollector{
		{name: "yamaps", platform: "Yandex Maps", mode: Incremental, result: &Result{RowsCollected: 5}},
		{name: "gmaps", platform: "Google Maps", mode: Incremental, result: &Result{RowsCollected: 2}},
		{name: "2gis", platform: "2GIS", mode: Full, result: &Result{RowsCollected: 9}},
	}
	reg := NewRegistry()
	for _, s := range stubs {
		reg.Register(s)
	}
	return reg, stubs
}

func TestRegistry_GetAndAll(t *testing.T) {
	reg, _ := newRegistryWithStubs()

	c, err := reg.Get("gmaps")
	require.NoError(t, err)
	assert.Equal(t, "Google Maps", c.Platform())

	_, err = reg.Get("tripadvisor")
	assert.Error(t, err)

	var names []string
	for _, c := range reg.All() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"yamaps", "gmaps", "2gis"}, names)
}

func TestRegistry_SelectByMode(t *testing.T) {
	reg, _ := newRegistryWithStubs()

	mode := Incremental
	got, err := reg.Select(&mode, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "yamaps", got[0].Name())
	assert.Equal(t, "gmaps", got[1].Name())
}

func TestRegistry_SelectByNames(t *testing.T) {
	reg, _ := newRegistryWithStubs()

	got, err := reg.Select(nil, []string{"2gis", "yamaps"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2gis", got[0].Name())

	_, err = reg.Select(nil, []string{"nope"})
	assert.Error(t, err)
}

func TestRegistry_SelectNamesFilteredByMode(t *testing.T) {
	reg, _ := newRegistryWithStubs()

	mode := Full
	got, err := reg.Select(&mode, []string{"yamaps", "2gis"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2gis", got[0].Name())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("full")
	require.NoError(t, err)
	assert.Equal(t, Full, m)

	m, err = ParseMode("incremental")
	require.NoError(t, err)
	assert.Equal(t, Incremental, m)

	_, err = ParseMode("partial")
	assert.Error(t, err)

	assert.Equal(t, "full", Full.String())
	assert.Equal(t, "incremental", Incremental.String())
	assert.Equal(t, "unknown", Mode(0).String())
}
