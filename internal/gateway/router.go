package gateway

import (
	"context"
	"time"

	"notigw/internal/logger"
	"notigw/pkg/errors"
	"notigw/pkg/metrics"
)

const (
	TransportQueue = "queue"
	TransportPush  = "push"
)

// Sink delivers one encoded action for one account.
type Sink interface {
	Send(ctx context.Context, payload string, accountID string) error
}

// Router picks exactly one sink per action based on the static queue flag
// resolved at process start. Never both, never neither.
type Router struct {
	queueEnabled bool
	queue        Sink
	push         Sink
	logger       logger.Logger
}

func NewRouter(queueEnabled bool, queue Sink, push Sink, log logger.Logger) *Router {
	return &Router{
		queueEnabled: queueEnabled,
		queue:        queue,
		push:         push,
		logger:       log,
	}
}

func (r *Router) Dispatch(ctx context.Context, payload string, accountID string) error {
	transport := TransportPush
	sink := r.push
	if r.queueEnabled {
		transport = TransportQueue
		sink = r.queue
	}

	if sink == nil {
		return errors.ErrDispatchPrecondition.WithDetail("transport", transport)
	}

	start := time.Now()
	err := sink.Send(ctx, payload, accountID)
	metrics.ObserveDispatchDuration(transport, time.Since(start))

	if err != nil {
		metrics.IncDispatch(transport, "error")
		r.logger.ErrorwCtx(ctx, "Dispatch failed",
			"transport", transport,
			"error", err,
		)
		return err
	}

	metrics.IncDispatch(transport, "success")
	r.logger.DebugwCtx(ctx, "Dispatched action",
		"transport", transport,
	)
	return nil
}
