package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

func sampleEvent() CheckinCompletedEvent {
	res := seating.CheckinResult{
		Status: seating.StatusOverbooked,
		Class:  model.ClassEconomy,
		Assignments: []seating.Assignment{
			{Traveler: model.Traveler{Name: "kid", Minor: true}, Seat: model.Seat{Label: "6A"}},
			{Traveler: model.Traveler{Name: "john"}, Seat: model.Seat{Label: "6B"}, Penalty: 1},
		},
		Unseated: []model.Traveler{{Name: "george"}},
		Score:    3.5,
	}
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	return NewCheckinCompletedEvent("OA815", "alice", res, at)
}

func TestNewCheckinCompletedEvent(t *testing.T) {
	ev := sampleEvent()
	assert.Equal(t, "OA815", ev.Flight)
	assert.Equal(t, "economy", ev.Class)
	assert.Equal(t, "overbooked", ev.Status)
	assert.Equal(t, "2026-10-19T07:00:00Z", ev.CheckedInAt)
	assert.Equal(t, []SeatEvent{
		{Traveler: "kid", Seat: "6A", Minor: true},
		{Traveler: "john", Seat: "6B", Penalty: 1},
	}, ev.Seats)
	assert.Equal(t, []string{"george"}, ev.Unseated)
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t,
		"[2026-10-19T07:00:00Z] Check-in overbooked | flight=OA815 | class=economy | agent=alice | score=3.5 | seats=[6A=kid,6B=john] | unseated=[george]",
		FormatLine(sampleEvent()))
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	require.NoError(t, handleMessage(dir, body))
	require.NoError(t, handleMessage(dir, body))

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "flight=OA815")
}

func TestHandleMessage_Rejects(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, handleMessage(dir, []byte("{not json")))
	assert.Error(t, handleMessage(dir, []byte(`{"class":"economy"}`)))
	_, err := os.Stat(filepath.Join(dir, LogFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestStartCheckinConsumer_LogsDialFailures(t *testing.T) {
	// grab a free port and close it so the dial is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	var buf bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err = StartCheckinConsumer(ctx, ConsumerConfig{
		URL:    "amqp://guest:guest@" + addr + "/",
		LogDir: t.TempDir(),
		Log:    slog.New(slog.NewTextHandler(&buf, nil)),
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, buf.String(), "failed to dial broker")
	assert.Contains(t, buf.String(), "component=checkin-consumer")
}
