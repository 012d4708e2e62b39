package domain

// Service represents a bookable offering of the salon
type Service struct {
	ID              int64
	Title           string
	Description     string
	Price           float64
	DurationMinutes int
	ImageURL        *string
}

// HasValidDuration returns true if the service defines a usable duration
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes > 0
}
