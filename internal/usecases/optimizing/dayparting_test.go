package optimizing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDayparting_JanelasInvalidas(t *testing.T) {
	tests := []struct {
		name    string
		windows []string
	}{
		{
			name:    "dia da semana desconhecido",
			windows: []string{"SEGUNDA:0-6:0.6"},
		},
		{
			name:    "formato sem multiplicador",
			windows: []string{"MONDAY:0-6"},
		},
		{
			name:    "faixa de horário invertida",
			windows: []string{"MONDAY:8-6:0.6"},
		},
		{
			name:    "hora final acima de 24",
			windows: []string{"MONDAY:20-25:0.6"},
		},
		{
			name:    "multiplicador não numérico",
			windows: []string{"MONDAY:0-6:abc"},
		},
		{
			name:    "multiplicador fora dos limites",
			windows: []string{"MONDAY:0-6:3.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDayparting(tt.windows, "UTC", 0.1, 2.0)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewDayparting_FusoHorarioDesconhecido(t *testing.T) {
	_, err := NewDayparting(nil, "Marte/Olympus", 0.1, 2.0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDayparting_MultiplierAt(t *testing.T) {
	dp, err := NewDayparting([]string{
		"MONDAY:0-6:0.6",
		"MONDAY:18-22:1.4",
		"SATURDAY:10-14:1.2",
	}, "UTC", 0.1, 2.0)
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{
			name: "madrugada de segunda dentro da janela",
			at:   time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC),
			want: 0.6,
		},
		{
			name: "hora final é exclusiva",
			at:   time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC),
			want: 1.0,
		},
		{
			name: "noite de segunda na janela de pico",
			at:   time.Date(2026, 8, 24, 20, 30, 0, 0, time.UTC),
			want: 1.4,
		},
		{
			name: "sábado dentro da janela",
			at:   time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC),
			want: 1.2,
		},
		{
			name: "dia sem janela vale 1.0",
			at:   time.Date(2026, 8, 26, 3, 0, 0, 0, time.UTC),
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dp.MultiplierAt(tt.at))
		})
	}
}

func TestDayparting_MultiplierAt_ConverteFusoHorario(t *testing.T) {
	dp, err := NewDayparting([]string{"MONDAY:20-23:1.4"}, "America/Sao_Paulo", 0.1, 2.0)
	require.NoError(t, err)

	// 23:30 UTC de segunda é 20:30 em São Paulo (UTC-3), dentro da janela.
	at := time.Date(2026, 8, 24, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1.4, dp.MultiplierAt(at))
}

func TestDayparting_HasWindows(t *testing.T) {
	vazio, err := NewDayparting(nil, "UTC", 0.1, 2.0)
	require.NoError(t, err)
	assert.False(t, vazio.HasWindows())

	comJanela, err := NewDayparting([]string{"FRIDAY:8-12:1.1"}, "UTC", 0.1, 2.0)
	require.NoError(t, err)
	assert.True(t, comJanela.HasWindows())
}
