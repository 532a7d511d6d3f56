package services

import (
	"context"
	"time"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/resilience"
)

// resilientLLM decorates a gateway backend with per-call timeouts and the
// executor's retry/breaker policy. The prompt contracts are untouched.
type resilientLLM struct {
	inner       LLMService
	executor    *resilience.Executor
	callTimeout time.Duration
}

// NewResilientLLM wraps backend so that transient gateway failures are
// retried before they reach the pipeline's degraded-result paths.
func NewResilientLLM(backend LLMService, executor *resilience.Executor, callTimeout time.Duration) LLMService {
	return &resilientLLM{
		inner:       backend,
		executor:    executor,
		callTimeout: callTimeout,
	}
}

// CompleteText implements LLMService.
func (r *resilientLLM) CompleteText(ctx context.Context, messages []Message) (string, error) {
	var result string
	err := r.executor.Execute(ctx, "complete_text", IsModelInvocation, func(ctx context.Context) error {
		callCtx, cancel := r.withTimeout(ctx)
		defer cancel()

		text, err := r.inner.CompleteText(callCtx, messages)
		if err != nil {
			return err
		}
		result = text
		return nil
	})
	return result, err
}

// CompleteVision implements LLMService.
func (r *resilientLLM) CompleteVision(ctx context.Context, messages []Message, images []ImageInput) (string, error) {
	var result string
	err := r.executor.Execute(ctx, "complete_vision", IsModelInvocation, func(ctx context.Context) error {
		callCtx, cancel := r.withTimeout(ctx)
		defer cancel()

		text, err := r.inner.CompleteVision(callCtx, messages, images)
		if err != nil {
			return err
		}
		result = text
		return nil
	})
	return result, err
}

func (r *resilientLLM) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.callTimeout)
}
