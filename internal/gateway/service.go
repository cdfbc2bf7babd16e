package gateway

import (
	"context"

	"notigw/internal/logger"
	"notigw/pkg/errors"
	"notigw/pkg/metrics"
)

// Service owns the forward pipeline: validate, build, encode, dispatch. Each
// call is an independent stateless transaction; the only cross-request state
// is the pair of prometheus counters.
type Service struct {
	router *Router
	logger logger.Logger
}

func NewService(router *Router, log logger.Logger) *Service {
	return &Service{
		router: router,
		logger: log,
	}
}

func (s *Service) Forward(ctx context.Context, req ForwardRequest) error {
	timestamp, err := ValidateForwardRequest(&req)
	if err != nil {
		return errors.ErrValidation.WithCause(err)
	}

	metrics.IncActionsReceived()

	action := NewAction(req, timestamp)

	payload, err := EncodeAction(action)
	if err != nil {
		s.logger.ErrorwCtx(ctx, "Failed to encode action",
			"error", err,
			"event_type", action.EventType,
			"bundle", action.Bundle,
			"application", action.Application,
		)
		return errors.ErrEncoding.WithCause(err)
	}

	if err := s.router.Dispatch(ctx, payload, action.AccountID); err != nil {
		return err
	}

	metrics.IncActionsForwarded()
	s.logger.InfowCtx(ctx, "Forwarded action",
		"event_type", action.EventType,
		"bundle", action.Bundle,
		"application", action.Application,
	)

	return nil
}
