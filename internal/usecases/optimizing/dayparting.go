package optimizing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// DaypartingWindow representa uma janela de horário com multiplicador de
// lance. HourEnd é exclusivo.
type DaypartingWindow struct {
	Day        time.Weekday
	HourStart  int
	HourEnd    int
	Multiplier float64
}

// Dayparting resolve o multiplicador de lance por dia da semana e hora. O
// fuso horário é explícito na configuração para que o comportamento não
// dependa do host onde o serviço roda.
type Dayparting struct {
	windows  []DaypartingWindow
	location *time.Location
	minMult  float64
	maxMult  float64
}

// NewDayparting interpreta janelas no formato "DIA:HORA_INICIO-HORA_FIM:MULT",
// ex.: "MONDAY:0-6:0.6". HORA_FIM é exclusiva.
func NewDayparting(windows []string, timezone string, minMult, maxMult float64) (*Dayparting, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: fuso horário '%s' desconhecido", ErrInvalidConfig, timezone)
	}

	if minMult <= 0 || maxMult < minMult {
		return nil, fmt.Errorf("%w: limites de multiplicador inconsistentes (min=%.2f, max=%.2f)",
			ErrInvalidConfig, minMult, maxMult)
	}

	dp := &Dayparting{
		location: location,
		minMult:  minMult,
		maxMult:  maxMult,
	}

	for _, raw := range windows {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		window, err := parseWindow(raw)
		if err != nil {
			return nil, err
		}

		if window.Multiplier < minMult || window.Multiplier > maxMult {
			return nil, fmt.Errorf("%w: multiplicador %.2f fora dos limites [%.2f, %.2f] em '%s'",
				ErrInvalidConfig, window.Multiplier, minMult, maxMult, raw)
		}

		dp.windows = append(dp.windows, window)
	}

	return dp, nil
}

func parseWindow(raw string) (DaypartingWindow, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return DaypartingWindow{}, fmt.Errorf("%w: janela de dayparting malformada '%s'", ErrInvalidConfig, raw)
	}

	day, ok := weekdayNames[strings.ToUpper(parts[0])]
	if !ok {
		return DaypartingWindow{}, fmt.Errorf("%w: dia da semana desconhecido '%s'", ErrInvalidConfig, parts[0])
	}

	hours := strings.Split(parts[1], "-")
	if len(hours) != 2 {
		return DaypartingWindow{}, fmt.Errorf("%w: faixa de horário malformada '%s'", ErrInvalidConfig, parts[1])
	}

	hourStart, err := strconv.Atoi(hours[0])
	if err != nil {
		return DaypartingWindow{}, fmt.Errorf("%w: hora inicial inválida '%s'", ErrInvalidConfig, hours[0])
	}

	hourEnd, err := strconv.Atoi(hours[1])
	if err != nil {
		return DaypartingWindow{}, fmt.Errorf("%w: hora final inválida '%s'", ErrInvalidConfig, hours[1])
	}

	if hourStart < 0 || hourEnd > 24 || hourStart >= hourEnd {
		return DaypartingWindow{}, fmt.Errorf("%w: faixa de horário inválida '%s'", ErrInvalidConfig, parts[1])
	}

	multiplier, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return DaypartingWindow{}, fmt.Errorf("%w: multiplicador inválido '%s'", ErrInvalidConfig, parts[2])
	}

	return DaypartingWindow{
		Day:        day,
		HourStart:  hourStart,
		HourEnd:    hourEnd,
		Multiplier: multiplier,
	}, nil
}

// MultiplierAt retorna o multiplicador vigente no instante informado,
// convertido para o fuso configurado. Fora de qualquer janela vale 1.0.
func (d *Dayparting) MultiplierAt(t time.Time) float64 {
	local := t.In(d.location)
	day := local.Weekday()
	hour := local.Hour()

	for _, window := range d.windows {
		if window.Day == day && hour >= window.HourStart && hour < window.HourEnd {
			return window.Multiplier
		}
	}

	return 1.0
}

// HasWindows indica se há janelas configuradas; sem janelas a feature de
// dayparting não gera intenções.
func (d *Dayparting) HasWindows() bool {
	return len(d.windows) > 0
}
