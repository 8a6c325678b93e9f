package analytics

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/utils"
)

const DefaultDays = 7

// DayRevenue is one row of the day-over-day revenue table.
type DayRevenue struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	AvgOrder float64 `json:"avg_order"`
	// Change is the percentage change against the previous day. It is nil
	// when there is nothing to compare against.
	Change *float64 `json:"change"`
}

type dayBucket struct {
	revenue  float64
	orders   int
	eligible int
}

func bucketByDay(orders []models.Order, loc *time.Location) map[string]*dayBucket {
	buckets := make(map[string]*dayBucket)
	for i := range orders {
		o := &orders[i]
		if o.CreatedAt.IsZero() {
			continue
		}
		key := o.CreatedAt.In(loc).Format(time.DateOnly)
		b := buckets[key]
		if b == nil {
			b = &dayBucket{}
			buckets[key] = b
		}
		b.orders++
		if o.IsRevenueEligible() {
			b.revenue += o.TotalAmount
			b.eligible++
		}
	}
	return buckets
}

// RevenueTrends summarises the last days calendar days in loc, today first.
// Revenue counts orders that are completed or paid; order counts include
// every order of the day.
func RevenueTrends(orders []models.Order, days int, now time.Time, loc *time.Location) []DayRevenue {
	if days <= 0 {
		days = DefaultDays
	}
	if loc == nil {
		loc = time.Local
	}
	buckets := bucketByDay(orders, loc)
	today := now.In(loc)

	rows := make([]DayRevenue, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, -i)
		row := DayRevenue{Date: day.Format(time.DateOnly), Label: dayLabel(i, day)}
		if b := buckets[row.Date]; b != nil {
			row.Revenue = b.revenue
			row.Orders = b.orders
			if b.eligible > 0 {
				row.AvgOrder = b.revenue / float64(b.eligible)
			}
		}
		rows[i] = row
	}

	for i := 0; i < len(rows)-1; i++ {
		rows[i].Change = PercentChange(rows[i+1].Revenue, rows[i].Revenue)
	}
	return rows
}

// PercentChange returns the change from prev to cur in percent. Growth from
// zero counts as 100; no change from zero is nil.
func PercentChange(prev, cur float64) *float64 {
	var c float64
	switch {
	case prev > 0:
		c = (cur - prev) / prev * 100
	case cur > 0:
		c = 100
	default:
		return nil
	}
	return &c
}

func dayLabel(i int, day time.Time) string {
	switch i {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	}
	return day.Format("Mon, Jan 2")
}

// SeriesPoint is one bar of the revenue chart.
type SeriesPoint struct {
	Label   string  `json:"label"`
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueSeries returns the last days calendar days in loc, oldest first.
func RevenueSeries(orders []models.Order, days int, now time.Time, loc *time.Location) []SeriesPoint {
	if days <= 0 {
		days = DefaultDays
	}
	if loc == nil {
		loc = time.Local
	}
	buckets := bucketByDay(orders, loc)
	today := now.In(loc)

	points := make([]SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		p := SeriesPoint{Label: day.Format("Mon"), Date: day.Format(time.DateOnly)}
		if b := buckets[p.Date]; b != nil {
			p.Revenue = b.revenue
			p.Orders = b.orders
		}
		points = append(points, p)
	}
	return points
}

// RenderRevenueChart writes the series as a PNG bar chart.
func RenderRevenueChart(w io.Writer, title, currency string, points []SeriesPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no data points to render")
	}

	maxRevenue := 1.0
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		bars[i] = chart.Value{Label: p.Label, Value: p.Revenue}
		maxRevenue = math.Max(maxRevenue, p.Revenue)
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    720,
		Height:   360,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxRevenue * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return utils.FormatMoney(currency, f)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
