package optimizing

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indica configuração de otimização inconsistente. É fatal:
// o run aborta antes de qualquer aplicação parcial.
var ErrInvalidConfig = errors.New("configuração de otimização inválida")

// InvalidBidError indica um lance computado fora dos limites configurados.
// As violações de limite viram erro explícito em vez de clamp silencioso
// duplicado.
type InvalidBidError struct {
	EntityID string
	Bid      float64
	MinBid   float64
	MaxBid   float64
}

func (e *InvalidBidError) Error() string {
	return fmt.Sprintf("lance %.2f da entidade %s fora dos limites [%.2f, %.2f]",
		e.Bid, e.EntityID, e.MinBid, e.MaxBid)
}

// PartialRunError indica que o run atingiu o deadline de relógio de parede e
// saiu cedo; o que já foi aplicado e auditado permanece válido.
type PartialRunError struct {
	RunID string
	Phase string
}

func (e *PartialRunError) Error() string {
	return fmt.Sprintf("run %s interrompido pelo deadline durante a fase '%s'", e.RunID, e.Phase)
}
