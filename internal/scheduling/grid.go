package scheduling

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidBusinessHours некорректные рабочие часы или шаг сетки
	ErrInvalidBusinessHours = errors.New("scheduling: invalid business hours")

	// ErrInvalidDuration неположительная длительность услуги
	ErrInvalidDuration = errors.New("scheduling: duration must be positive")
)

// BusinessHours рабочие часы как смещения от полуночи
type BusinessHours struct {
	Opening  time.Duration
	Closing  time.Duration
	Step     time.Duration
	Location *time.Location
}

// HoursFromConfig переводит настройки салона в BusinessHours
func HoursFromConfig(cfg domain.SchedulingConfig) (BusinessHours, error) {
	opening, err := cfg.OpeningTime.Offset()
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: opening: %v", ErrInvalidBusinessHours, err)
	}
	closing, err := cfg.ClosingTime.Offset()
	if err != nil {
		return BusinessHours{}, fmt.Errorf("%w: closing: %v", ErrInvalidBusinessHours, err)
	}

	hours := BusinessHours{
		Opening:  opening,
		Closing:  closing,
		Step:     cfg.Granularity(),
		Location: cfg.Loc(),
	}
	if err := hours.Validate(); err != nil {
		return BusinessHours{}, err
	}
	return hours, nil
}

// Validate проверяет opening < closing и положительный шаг
func (h BusinessHours) Validate() error {
	if h.Step <= 0 {
		return fmt.Errorf("%w: step must be positive", ErrInvalidBusinessHours)
	}
	if h.Opening < 0 || h.Closing > 24*time.Hour || h.Opening >= h.Closing {
		return fmt.Errorf("%w: opening must be before closing", ErrInvalidBusinessHours)
	}
	return nil
}

func (h BusinessHours) loc() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

// Midnight начало календарного дня date в часовом поясе салона
func (h BusinessHours) Midnight(date time.Time) time.Time {
	y, m, d := date.In(h.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, h.loc())
}

// clock время суток offset в день date по местным часам.
// В дни перевода часов это не то же самое, что полночь + offset.
func (h BusinessHours) clock(date time.Time, offset time.Duration) time.Time {
	y, m, d := date.In(h.loc()).Date()
	return time.Date(y, m, d, 0, 0, int(offset/time.Second), 0, h.loc())
}

// Window рабочее окно [opening, closing) в день date
func (h BusinessHours) Window(date time.Time) Interval {
	return Interval{Start: h.clock(date, h.Opening), End: h.clock(date, h.Closing)}
}

// IsAligned проверяет, что t попадает на сетку слотов
func (h BusinessHours) IsAligned(t time.Time) bool {
	offset := t.Sub(h.clock(t, h.Opening))
	return offset >= 0 && offset%h.Step == 0
}

// Candidate кандидат сетки: интервал длиной в услугу и признак того,
// что он заканчивается не позже закрытия
type Candidate struct {
	Interval
	WithinHours bool
}

// Label время начала в формате "HH:MM"
func (c Candidate) Label() string {
	return c.Start.Format(domain.TimeFormat)
}

// Grid сетка кандидатов на один день для услуги заданной длительности
type Grid struct {
	window   Interval
	step     time.Duration
	duration time.Duration
}

// NewGrid строит сетку на date. Кандидаты начинаются от opening с шагом step,
// пока начало строго раньше closing.
func NewGrid(date time.Time, duration time.Duration, hours BusinessHours) (*Grid, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Grid{
		window:   hours.Window(date),
		step:     hours.Step,
		duration: duration,
	}, nil
}

// Len количество кандидатов
func (g *Grid) Len() int {
	span := g.window.Duration()
	n := int(span / g.step)
	if span%g.step != 0 {
		n++
	}
	return n
}

// Candidates ленивая конечная последовательность кандидатов.
// Каждый вызов range начинает обход заново.
func (g *Grid) Candidates() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for start := g.window.Start; start.Before(g.window.End); start = start.Add(g.step) {
			iv := NewInterval(start, g.duration)
			if !yield(Candidate{Interval: iv, WithinHours: !iv.End.After(g.window.End)}) {
				return
			}
		}
	}
}
