package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/models"
)

func TestExportOrdersEmpty(t *testing.T) {
	env := newTestEnv(t)
	r := env.restaurant(t, "empty")
	svc := NewExportService(env.gw, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC) }

	res, err := svc.Orders(context.Background(), ExportOptions{RestaurantID: r.ID})
	require.NoError(t, err)
	assert.Equal(t, "", string(res.Content))
	assert.Zero(t, res.Count)
	assert.Equal(t, "orders-20260704.csv", res.Filename)
}

func TestExportOrdersFiltersRangeAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "export")
	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	env.order(t, r.ID, models.StatusCompleted, base)
	env.order(t, r.ID, models.StatusPending, base.Add(24*time.Hour))
	env.order(t, r.ID, models.StatusCompleted, base.Add(48*time.Hour))
	env.order(t, r.ID, models.StatusCompleted, base.Add(-72*time.Hour))

	svc := NewExportService(env.gw, time.UTC)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 3, 23, 59, 59, 0, time.UTC)

	res, err := svc.Orders(ctx, ExportOptions{RestaurantID: r.ID, Start: &start, End: &end, Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "orders-20260701-20260703.csv", res.Filename)
	lines := strings.Split(string(res.Content), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "ORD-"))
	assert.Contains(t, lines[1], "2026-07-03 12:00,N/A")

	res, err = svc.Orders(ctx, ExportOptions{RestaurantID: r.ID, Start: &start, End: &end, Status: string(models.StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	pdf, err := svc.OrdersPDF(ctx, ExportOptions{RestaurantID: r.ID, Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, "orders-20260701-20260703.pdf", pdf.Filename)
	assert.Equal(t, 3, pdf.Count)

	_, err = svc.Orders(ctx, ExportOptions{RestaurantID: r.ID, Status: "lost"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestExportRevenueAndMenu(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "rev")

	require.NoError(t, env.db.Create(&models.Invoice{RestaurantID: r.ID, InvoiceNumber: "INV-1", PaymentMethod: "cash", PaymentStatus: "paid", TotalAmount: 50}).Error)
	cat := models.Category{RestaurantID: r.ID, Name: "Drinks", IsActive: true}
	require.NoError(t, env.db.Create(&cat).Error)
	require.NoError(t, env.db.Create(&models.MenuItem{RestaurantID: r.ID, CategoryID: &cat.ID, Name: "Chai", Price: 20, IsAvailable: true}).Error)
	require.NoError(t, env.db.Create(&models.MenuItem{RestaurantID: r.ID, Name: "Bun", Price: 10}).Error)

	svc := NewExportService(env.gw, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC) }

	rev, err := svc.Revenue(ctx, ExportOptions{RestaurantID: r.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, rev.Count)
	assert.Equal(t, "revenue-20260704.csv", rev.Filename)
	assert.Contains(t, string(rev.Content), "INV-1,")

	menu, err := svc.MenuItems(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "menu-20260704.csv", menu.Filename)
	lines := strings.Split(string(menu.Content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Bun,,10,,No,No,No,No,0,0", lines[1])
	assert.Equal(t, "Chai,,20,Drinks,Yes,No,No,No,0,0", lines[2])

	_, err = svc.MenuItems(ctx, "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
