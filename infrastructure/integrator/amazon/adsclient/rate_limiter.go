package adsclient

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implementa um token bucket compartilhado por todas as chamadas
// de saída. A capacidade é o burst permitido e o refil é contínuo na taxa
// configurada. Seguro para chamadas concorrentes: os downloads paralelos do
// pipeline de relatórios compartilham a mesma instância do resto do motor.
type RateLimiter struct {
	mu         sync.Mutex
	rate       float64 // tokens por segundo
	capacity   float64
	tokens     float64
	lastRefill time.Time
	maxWait    time.Duration
}

func NewRateLimiter(requestsPerSecond float64, burstAllowance int, maxWait time.Duration) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	if burstAllowance <= 0 {
		burstAllowance = 3
	}

	return &RateLimiter{
		rate:       requestsPerSecond,
		capacity:   float64(burstAllowance),
		tokens:     float64(burstAllowance),
		lastRefill: time.Now(),
		maxWait:    maxWait,
	}
}

// Acquire bloqueia até haver um token disponível e o consome. Se a espera
// ultrapassar o máximo configurado, retorna ErrRateLimitTimeout em vez de
// pendurar para sempre. O cancelamento do contexto também interrompe a
// espera.
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	deadline := time.Now().Add(rl.maxWait)

	for {
		rl.mu.Lock()
		rl.refillLocked()

		if rl.tokens >= 1 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}

		// Tempo até o próximo token ficar disponível
		wait := time.Duration((1 - rl.tokens) / rl.rate * float64(time.Second))
		rl.mu.Unlock()

		if rl.maxWait > 0 && time.Now().Add(wait).After(deadline) {
			return ErrRateLimitTimeout
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refillLocked repõe tokens proporcionalmente ao tempo decorrido, limitado à
// capacidade. Deve ser chamado com o mutex adquirido.
func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
	rl.lastRefill = now
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
