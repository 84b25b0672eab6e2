package domain

import "math"

// Metrics agrega as métricas de performance de uma entidade (keyword,
// campanha ou termo de busca) dentro da janela de lookback.
type Metrics struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Cost        float64 `json:"cost"`
	Sales       float64 `json:"sales"`
	Orders      int     `json:"orders"`
}

// Acos retorna o custo de publicidade sobre vendas. Sem vendas, o ACOS é
// infinito (gasto sem retorno).
func (m Metrics) Acos() float64 {
	if m.Sales <= 0 {
		return math.Inf(1)
	}
	return m.Cost / m.Sales
}

func (m Metrics) Ctr() float64 {
	if m.Impressions <= 0 {
		return 0
	}
	return float64(m.Clicks) / float64(m.Impressions)
}

func (m Metrics) Cpc() float64 {
	if m.Clicks <= 0 {
		return 0
	}
	return m.Cost / float64(m.Clicks)
}

func (m Metrics) Roas() float64 {
	if m.Cost <= 0 {
		return 0
	}
	return m.Sales / m.Cost
}
