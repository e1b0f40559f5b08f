package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumerConfig configures the check-in log consumer.
type ConsumerConfig struct {
	URL    string       // broker URL
	LogDir string       // directory holding checkin.log
	Log    *slog.Logger // defaults to slog.Default()
}

// LogFileName is the file events are appended to inside LogDir.
const LogFileName = "checkin.log"

// StartCheckinConsumer consumes the checkin.completed queue and appends one
// line per event to <LogDir>/checkin.log.  It reconnects with exponential
// backoff and returns only when ctx is cancelled.  Malformed messages are
// rejected without requeue.
func StartCheckinConsumer(ctx context.Context, cfg ConsumerConfig) error {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "checkin-consumer")

	backoff := time.Second
	for {
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			log.Warn("failed to dial broker", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, log, conn, cfg.LogDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, log *slog.Logger, conn *amqp.Connection, dir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("set QoS failed", "error", err)
	}
	if err := declareQueue(ch); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, CheckinQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(dir, d.Body); err != nil {
			log.Error("handle message failed", "error", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(dir string, body []byte) error {
	var ev CheckinCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Flight == "" {
		return errors.New("event without flight")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev) + "\n"); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as a single human-friendly log line.
func FormatLine(ev CheckinCompletedEvent) string {
	seats := make([]string, 0, len(ev.Seats))
	for _, s := range ev.Seats {
		seats = append(seats, s.Seat+"="+s.Traveler)
	}
	line := fmt.Sprintf("[%s] Check-in %s | flight=%s | class=%s | agent=%s | score=%g | seats=[%s]",
		ev.CheckedInAt, ev.Status, ev.Flight, ev.Class, ev.Agent, ev.Score, strings.Join(seats, ","))
	if len(ev.Unseated) > 0 {
		line += " | unseated=[" + strings.Join(ev.Unseated, ",") + "]"
	}
	return line
}
