package domain

import "github.com/golang-jwt/jwt/v5"

// Operator é quem pode disparar runs de otimização pela API. Não há
// multi-tenancy: os operadores vêm da configuração, não de banco.
type Operator struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	OperatorRoleAdmin  = "admin"
	OperatorRoleViewer = "viewer"
)

type Claims struct {
	Username string
	Role     string
	jwt.RegisteredClaims
}
