package export

import (
	"time"

	"github.com/yeremiapane/restaurant-console/models"
)

const dateLayout = "2006-01-02 15:04"

// OrderRows flattens orders into export records. Times are shown in loc.
func OrderRows(orders []models.Order, loc *time.Location) []Record {
	out := make([]Record, 0, len(orders))
	for _, o := range orders {
		table := "N/A"
		if o.Table != nil && o.Table.TableNumber != "" {
			table = o.Table.TableNumber
		}
		out = append(out, Record{
			{"Order Number", o.OrderNumber},
			{"Date", formatDate(o.CreatedAt, loc)},
			{"Table", table},
			{"Customer Name", strOrEmpty(o.CustomerName)},
			{"Customer Phone", strOrEmpty(o.CustomerPhone)},
			{"Status", string(o.Status)},
			{"Payment Status", o.PaymentStatus},
			{"Payment Method", strOrEmpty(o.PaymentMethod)},
			{"Subtotal", o.Subtotal},
			{"Tax", o.TaxAmount},
			{"Service Charge", o.ServiceCharge},
			{"Total Amount", o.TotalAmount},
		})
	}
	return out
}

// RevenueRows flattens invoices into export records.
func RevenueRows(invoices []models.Invoice, loc *time.Location) []Record {
	out := make([]Record, 0, len(invoices))
	for _, inv := range invoices {
		discount := 0.0
		if inv.DiscountAmount != nil {
			discount = *inv.DiscountAmount
		}
		out = append(out, Record{
			{"Invoice Number", inv.InvoiceNumber},
			{"Date", formatDate(inv.CreatedAt, loc)},
			{"Customer", strOrEmpty(inv.CustomerName)},
			{"Payment Method", inv.PaymentMethod},
			{"Status", inv.PaymentStatus},
			{"Subtotal", inv.Subtotal},
			{"Tax", inv.TaxAmount},
			{"Service Charge", inv.ServiceCharge},
			{"Discount", discount},
			{"Total", inv.TotalAmount},
		})
	}
	return out
}

// MenuRows flattens menu items into export records.
func MenuRows(items []models.MenuItem) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		category := ""
		if it.Category != nil {
			category = it.Category.Name
		}
		out = append(out, Record{
			{"Name", it.Name},
			{"Description", strOrEmpty(it.Description)},
			{"Price", it.Price},
			{"Category", category},
			{"Available", yesNo(it.IsAvailable)},
			{"Vegetarian", yesNo(it.IsVegetarian)},
			{"Vegan", yesNo(it.IsVegan)},
			{"Popular", yesNo(it.IsPopular)},
			{"Spicy Level", intOrZero(it.SpicyLevel)},
			{"Prep Time (min)", intOrZero(it.PrepTimeMinutes)},
		})
	}
	return out
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
