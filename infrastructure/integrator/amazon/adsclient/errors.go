package adsclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifica um erro do gateway para que o chamador decida a
// reação: fatal aborta o run, retryable já esgotou as tentativas internas e
// vira erro reportado na operação, validation exige correção do valor.
type ErrorKind int

const (
	ErrorKindFatal ErrorKind = iota
	ErrorKindRetryable
	ErrorKindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindFatal:
		return "fatal"
	case ErrorKindRetryable:
		return "retryable"
	case ErrorKindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// APIError é o resultado de falha de uma chamada ao gateway. Os chamadores
// ramificam pelo Kind em vez de inspecionar strings de erro.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("erro %s na API (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("erro %s na API: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

var (
	// ErrAuthentication indica falha ao renovar o access token. Um refresh
	// token inválido não se recupera sozinho, então não há retry.
	ErrAuthentication = errors.New("falha de autenticação com a Amazon Ads API")

	// ErrRateLimitTimeout indica que uma chamada esperou além do máximo
	// configurado por um token do rate limiter.
	ErrRateLimitTimeout = errors.New("tempo máximo de espera do rate limiter excedido")
)
