package llm

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/oakhigbe/globuschat/internal/types"
)

// serialEngine admits one completion call at a time. The local
// inference engine is a shared process-wide resource and is not assumed
// reentrant, so concurrent requests queue on the mutex. The limiter
// additionally caps the call rate.
type serialEngine struct {
	inner   types.CompletionService
	mu      sync.Mutex
	limiter *rate.Limiter
}

// Serialize wraps a completion service so that at most one inference
// call is in flight, at no more than rps calls per second.
func Serialize(inner types.CompletionService, rps float64) types.CompletionService {
	if rps <= 0 {
		rps = 2
	}
	return &serialEngine{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (s *serialEngine) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Complete(ctx, req)
}
