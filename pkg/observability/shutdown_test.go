package observability

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsInReverseOrder(t *testing.T) {
	logger := NewLogger(ErrorLevel, io.Discard)
	sm := NewShutdownManager(logger, time.Second)

	var order []string
	sm.Register("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	sm.Register("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	sm.Shutdown()

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestShutdownContinuesAfterError(t *testing.T) {
	logger := NewLogger(ErrorLevel, io.Discard)
	sm := NewShutdownManager(logger, time.Second)

	var reached bool
	sm.Register("survives", func(ctx context.Context) error {
		reached = true
		return nil
	})
	sm.Register("fails", func(ctx context.Context) error {
		return errors.New("boom")
	})

	sm.Shutdown()

	assert.True(t, reached)
}

func TestShutdownDefaultTimeout(t *testing.T) {
	logger := NewLogger(ErrorLevel, io.Discard)
	sm := NewShutdownManager(logger, 0)

	var deadlineSet bool
	sm.Register("check", func(ctx context.Context) error {
		_, deadlineSet = ctx.Deadline()
		return nil
	})

	sm.Shutdown()

	assert.True(t, deadlineSet)
}
