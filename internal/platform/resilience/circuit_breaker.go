package resilience

import (
	"errors"

	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker guards calls to one upstream dependency. A disabled breaker runs
// every call straight through.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	enabled bool
}

// NewBreaker trips after FailureThreshold consecutive failures and lets through
// up to HalfOpenMaxReq trial calls once OpenTimeout has elapsed. isFailure decides
// which errors count against the dependency; nil counts every error.
func NewBreaker(name string, cfg CircuitBreakerConfig, isFailure func(error) bool, logger *logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = cfg.WithDefaults()

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.FailureThreshold)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from_state", from.String(),
				"to_state", to.String(),
			)
		},
	}
	if isFailure != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !isFailure(err)
		}
	}

	return &Breaker{
		cb:      gobreaker.NewCircuitBreaker(settings),
		enabled: cfg.Enabled,
	}
}

// Execute runs fn through the breaker. Rejections surface as ErrCircuitOpen.
func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	if b == nil || !b.enabled {
		return fn()
	}

	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return out, err
}

func (b *Breaker) State() string {
	if b == nil || !b.enabled {
		return "disabled"
	}
	return b.cb.State().String()
}
