// Package scheduling чистая логика расписания: интервалы, сетка слотов,
// доступность сотрудников, автоназначение и жизненный цикл бронирования.
// Пакет не обращается к БД и не знает о транспорте.
package scheduling

import "time"

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал от start длиной duration
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// Overlaps проверяет пересечение. Интервалы, которые только касаются границами, не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration длина интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Within проверяет, что интервал целиком лежит внутри outer
func (i Interval) Within(outer Interval) bool {
	return !i.Start.Before(outer.Start) && !i.End.After(outer.End)
}
