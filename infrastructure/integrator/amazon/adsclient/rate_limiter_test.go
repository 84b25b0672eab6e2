package adsclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_BurstConsomeSemEspera(t *testing.T) {
	limiter := NewRateLimiter(10, 3, time.Second)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(context.Background()))
	}

	// As três primeiras aquisições cabem no burst e não devem bloquear.
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestRateLimiter_EsgotadoEsperaPeloRefil(t *testing.T) {
	limiter := NewRateLimiter(50, 1, time.Second)

	require.NoError(t, limiter.Acquire(context.Background()))

	start := time.Now()
	require.NoError(t, limiter.Acquire(context.Background()))

	// O segundo token só existe após ~20ms de refil a 50 req/s.
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestRateLimiter_EsperaMaximaExcedida(t *testing.T) {
	limiter := NewRateLimiter(0.5, 1, 10*time.Millisecond)

	require.NoError(t, limiter.Acquire(context.Background()))

	// O próximo token levaria 2s; a espera máxima é 10ms.
	err := limiter.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrRateLimitTimeout)
}

func TestRateLimiter_ContextoCanceladoInterrompeAEspera(t *testing.T) {
	limiter := NewRateLimiter(0.5, 1, time.Minute)

	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_ParametrosInvalidosUsamPadrao(t *testing.T) {
	limiter := NewRateLimiter(0, 0, time.Second)

	// Os padrões permitem pelo menos uma aquisição imediata.
	assert.NoError(t, limiter.Acquire(context.Background()))
}
