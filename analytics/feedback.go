package analytics

import (
	"math"

	"github.com/yeremiapane/restaurant-console/models"
)

type FeedbackSummary struct {
	Total           int         `json:"total"`
	AvgRating       float64     `json:"avg_rating"`
	GoogleRedirects int         `json:"google_redirects"`
	Distribution    map[int]int `json:"rating_distribution"`
}

// FeedbackStats averages ratings to one decimal and counts each rating 1..5.
func FeedbackStats(rows []models.Feedback) FeedbackSummary {
	s := FeedbackSummary{
		Total:        len(rows),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	sum := 0
	for _, f := range rows {
		sum += f.Rating
		if f.RedirectedToGoogle {
			s.GoogleRedirects++
		}
		if _, ok := s.Distribution[f.Rating]; ok {
			s.Distribution[f.Rating]++
		}
	}
	if s.Total > 0 {
		s.AvgRating = math.Round(float64(sum)/float64(s.Total)*10) / 10
	}
	return s
}
