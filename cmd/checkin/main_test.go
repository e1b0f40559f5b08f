package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"testdata/tiny.asc", "testdata/beatles.asc", "testdata/late.asc"}, &out))

	s := out.String()
	assert.Contains(t, s, "testdata/beatles.asc: economy, ok")
	assert.Contains(t, s, "testdata/late.asc: economy, overbooked")
	assert.Contains(t, s, "FLIGHT TN1\n---------  economy  ---------\n")

	lines := strings.Split(strings.TrimSpace(s), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "2: 2A(WE)::"), last)
}

func TestRun_Quiet(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-q", "testdata/tiny.asc", "testdata/beatles.asc"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "FLIGHT TN1\n"))
	assert.NotContains(t, out.String(), "beatles.asc:")
	assert.Equal(t, 4, strings.Count(out.String(), "::NONE"))
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.Error(t, run([]string{"testdata/missing.asc"}, &out))
	assert.Error(t, run([]string{"testdata/tiny.asc", "testdata/missing.asc"}, &out))
	assert.Error(t, run([]string{"-safety", "0", "testdata/tiny.asc"}, &out))
}
