package model

import "time"

type SeriesPoint struct {
	Price     float64   `json:"price"`
	Rsi       float64   `json:"rsi"`
	Timestamp time.Time `json:"timestamp"`
}

// SeriesBuffer keeps the last Limit samples, oldest first.
type SeriesBuffer struct {
	Limit  int
	points []SeriesPoint
}

func NewSeriesBuffer(limit int) *SeriesBuffer {
	return &SeriesBuffer{
		Limit:  limit,
		points: make([]SeriesPoint, 0, limit),
	}
}

func (s *SeriesBuffer) Append(point SeriesPoint) {
	s.points = append(s.points, point)
	if len(s.points) > s.Limit {
		trimmed := make([]SeriesPoint, s.Limit)
		copy(trimmed, s.points[len(s.points)-s.Limit:])
		s.points = trimmed
	}
}

func (s *SeriesBuffer) Len() int {
	return len(s.points)
}

func (s *SeriesBuffer) Points() []SeriesPoint {
	points := make([]SeriesPoint, len(s.points))
	copy(points, s.points)

	return points
}

func (s *SeriesBuffer) Last() (SeriesPoint, bool) {
	if len(s.points) == 0 {
		return SeriesPoint{}, false
	}

	return s.points[len(s.points)-1], true
}
