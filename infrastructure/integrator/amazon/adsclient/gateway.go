package adsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	maxAttempts      = 3
	backoffBase      = 2 * time.Second
	backoffCap       = 10 * time.Second
	maxLoggedBodyLen = 512
)

// Gateway concentra toda a E/S de rede com a Amazon Ads API: admissão pelo
// rate limiter, cabeçalhos da AuthSession, conexão reutilizada e política de
// retry com backoff exponencial. Nenhuma outra parte do sistema fala HTTP
// com a plataforma diretamente.
type Gateway struct {
	cfg        *config.Config
	limiter    *RateLimiter
	session    *AuthSession
	httpClient *http.Client

	// sleep é substituível em testes para não esperar o backoff real
	sleep func(time.Duration)
}

func NewGateway(cfg *config.Config, limiter *RateLimiter, session *AuthSession, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Gateway{
		cfg:        cfg,
		limiter:    limiter,
		session:    session,
		httpClient: httpClient,
		sleep:      time.Sleep,
	}
}

// Call executa uma chamada à API. 5xx e erros de rede são retentados até 3
// vezes com backoff exponencial (base 2s, teto 10s); 4xx retorna imediato
// para o chamador reagir. O retorno de erro é sempre um *APIError com o
// Kind classificado.
func (g *Gateway) Call(ctx context.Context, method, path string, body []byte) ([]byte, *APIError) {
	if err := g.limiter.Acquire(ctx); err != nil {
		if errors.Is(err, ErrRateLimitTimeout) {
			return nil, &APIError{Kind: ErrorKindRetryable, Message: err.Error(), Cause: err}
		}
		return nil, &APIError{Kind: ErrorKindFatal, Message: err.Error(), Cause: err}
	}

	url := g.cfg.Amazon.BaseURL + path

	var lastErr *APIError
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		respBody, apiErr := g.doRequest(ctx, method, url, path, body)
		if apiErr == nil {
			return respBody, nil
		}

		if apiErr.Kind != ErrorKindRetryable {
			return nil, apiErr
		}

		lastErr = apiErr
		if attempt == maxAttempts {
			break
		}

		backoff := backoffDuration(attempt)
		logrus.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"attempt": attempt,
			"backoff": backoff.String(),
			"status":  apiErr.StatusCode,
		}).Warn("Chamada falhou, tentando novamente")

		select {
		case <-ctx.Done():
			return nil, &APIError{Kind: ErrorKindRetryable, Message: ctx.Err().Error(), Cause: ctx.Err()}
		default:
			g.sleep(backoff)
		}
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	}).Errorf("Chamada falhou após %d tentativas", maxAttempts)

	return nil, lastErr
}

func (g *Gateway) doRequest(ctx context.Context, method, url, path string, body []byte) ([]byte, *APIError) {
	headers, err := g.session.Headers(ctx)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindFatal, Message: err.Error(), Cause: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindFatal, Message: err.Error(), Cause: err}
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"body":   truncateAndRedact(body),
	}).Debug("Chamando Amazon Ads API")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// erro de rede: retryable
		return nil, &APIError{Kind: ErrorKindRetryable, Message: err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: ErrorKindRetryable, Message: err.Error(), Cause: err}
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
		"body":   truncateAndRedact(respBody),
	}).Debug("Resposta da Amazon Ads API")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return respBody, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		// Respeitar o Retry-After quando informado
		if after := resp.Header.Get("Retry-After"); after != "" {
			if seconds, convErr := strconv.Atoi(after); convErr == nil && seconds > 0 {
				g.sleep(time.Duration(seconds) * time.Second)
			}
		}
		return nil, &APIError{
			Kind:       ErrorKindRetryable,
			StatusCode: resp.StatusCode,
			Message:    "limite de requisições da plataforma atingido",
		}

	case resp.StatusCode >= 500:
		return nil, &APIError{
			Kind:       ErrorKindRetryable,
			StatusCode: resp.StatusCode,
			Message:    truncateAndRedact(respBody),
		}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &APIError{
			Kind:       ErrorKindFatal,
			StatusCode: resp.StatusCode,
			Message:    truncateAndRedact(respBody),
			Cause:      ErrAuthentication,
		}

	default:
		// 4xx restantes: o chamador precisa reagir (ex.: revalidar o valor
		// de uma mutação); não adianta retentar.
		return nil, &APIError{
			Kind:       ErrorKindValidation,
			StatusCode: resp.StatusCode,
			Message:    truncateAndRedact(respBody),
		}
	}
}

func backoffDuration(attempt int) time.Duration {
	d := backoffBase
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	if d > backoffCap {
		d = backoffCap
	}
	return d
}

// truncateAndRedact prepara um corpo para log: limita o tamanho e remove
// tokens de acesso que possam aparecer no payload.
func truncateAndRedact(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	s := string(body)
	for _, field := range []string{"access_token", "refresh_token", "client_secret"} {
		idx := strings.Index(s, field)
		if idx >= 0 {
			s = s[:idx] + field + "\":\"[REDACTED]\"…"
			break
		}
	}

	if len(s) > maxLoggedBodyLen {
		return s[:maxLoggedBodyLen] + fmt.Sprintf("… (%d bytes)", len(body))
	}
	return s
}
