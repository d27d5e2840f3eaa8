package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbar/internal/feature/performance/domain/entity"
	"finbar/internal/feature/performance/transport/http/dto"
)

func fixedNow() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runDemo(context.Background(), &buf, "7d", 42, fixedNow))

	var res dto.PerformanceRes
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, "7D", res.Range)
	require.Len(t, res.Points, 8)
	assert.Equal(t, "2024-03-31", res.Points[7].Date.String())
	assert.Equal(t, res.Points[0].Value, res.Summary.InitialValue)
	assert.Contains(t, buf.String(), "₪")
}

func TestRunDemo_SeedIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, runDemo(context.Background(), &a, "3M", 7, fixedNow))
	require.NoError(t, runDemo(context.Background(), &b, "3M", 7, fixedNow))
	assert.Equal(t, a.String(), b.String())
}

func TestRunDemo_InvalidRange(t *testing.T) {
	err := runDemo(context.Background(), &bytes.Buffer{}, "10Y", 1, fixedNow)
	assert.True(t, errors.Is(err, entity.ErrInvalidWindow))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "finbar dev (unknown)\n", buf.String())
}
