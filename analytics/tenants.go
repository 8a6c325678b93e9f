package analytics

import (
	"time"

	"github.com/yeremiapane/restaurant-console/models"
)

// Monthly plan prices used for platform revenue estimates.
const (
	ProMonthlyPrice        = 999
	EnterpriseMonthlyPrice = 2999
)

const DefaultMonths = 6

type TenantSummary struct {
	Total      int     `json:"total"`
	Active     int     `json:"active"`
	Free       int     `json:"free"`
	Pro        int     `json:"pro"`
	Enterprise int     `json:"enterprise"`
	MRR        float64 `json:"mrr"`
}

func TenantStats(restaurants []models.Restaurant) TenantSummary {
	s := TenantSummary{Total: len(restaurants)}
	for _, r := range restaurants {
		if r.IsActive {
			s.Active++
		}
		switch r.SubscriptionTier {
		case models.TierFree:
			s.Free++
		case models.TierPro:
			s.Pro++
		case models.TierEnterprise:
			s.Enterprise++
		}
	}
	s.MRR = float64(s.Pro*ProMonthlyPrice + s.Enterprise*EnterpriseMonthlyPrice)
	return s
}

type MonthPoint struct {
	Month   string  `json:"month"`
	Tenants int     `json:"tenants"`
	Revenue float64 `json:"revenue"`
}

// MonthlyTrend returns the last months calendar months, oldest first. Each
// month counts tenants created by its end and the plan revenue of those
// still active.
func MonthlyTrend(restaurants []models.Restaurant, months int, now time.Time, loc *time.Location) []MonthPoint {
	if months <= 0 {
		months = DefaultMonths
	}
	if loc == nil {
		loc = time.Local
	}
	cur := now.In(loc)
	first := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, loc)

	points := make([]MonthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

		p := MonthPoint{Month: start.Format("Jan")}
		for _, r := range restaurants {
			if r.CreatedAt.IsZero() || r.CreatedAt.After(end) {
				continue
			}
			p.Tenants++
			if r.IsActive {
				p.Revenue += tierPrice(r.SubscriptionTier)
			}
		}
		points = append(points, p)
	}
	return points
}

func tierPrice(tier string) float64 {
	switch tier {
	case models.TierPro:
		return ProMonthlyPrice
	case models.TierEnterprise:
		return EnterpriseMonthlyPrice
	}
	return 0
}
