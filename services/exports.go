package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/export"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/utils"
)

type ExportOptions struct {
	RestaurantID string
	Start        *time.Time
	End          *time.Time
	// Status narrows order exports; "" and "all" export every status.
	Status string
}

// ExportResult is a finished export ready to be sent as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
	Count       int
}

const (
	csvContentType = "text/csv;charset=utf-8"
	pdfContentType = "application/pdf"
)

// ExportService builds CSV and PDF exports from full, unpaginated queries.
type ExportService struct {
	gw  *gateway.Gateway
	loc *time.Location
	now func() time.Time
}

func NewExportService(gw *gateway.Gateway, loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{gw: gw, loc: loc, now: time.Now}
}

func rangeFilters(q gateway.Query, opts ExportOptions) gateway.Query {
	if opts.Start != nil {
		q = q.Where(gateway.Gte("created_at", *opts.Start))
	}
	if opts.End != nil {
		q = q.Where(gateway.Lte("created_at", *opts.End))
	}
	return q
}

func (s *ExportService) orders(ctx context.Context, opts ExportOptions) ([]models.Order, error) {
	if opts.RestaurantID == "" {
		return nil, &ValidationError{Fields: []string{"restaurant_id"}}
	}
	q := gateway.Query{Resource: gateway.Orders, Expand: []string{"Table"}}.
		Where(gateway.Eq("restaurant_id", opts.RestaurantID))
	q = rangeFilters(q, opts)
	if opts.Status != "" && opts.Status != allFilter {
		if !models.OrderStatus(opts.Status).Valid() {
			return nil, &ValidationError{Fields: []string{"status"}}
		}
		q = q.Where(gateway.Eq("status", opts.Status))
	}
	q = q.OrderBy("created_at", true)

	var orders []models.Order
	if err := s.gw.Select(ctx, q, &orders); err != nil {
		return nil, fmt.Errorf("export orders: %w", err)
	}
	return orders, nil
}

// Orders exports the tenant's orders as CSV, newest first.
func (s *ExportService) Orders(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	orders, err := s.orders(ctx, opts)
	if err != nil {
		return nil, err
	}
	rows := export.OrderRows(orders, s.loc)
	return s.csvResult("orders", opts, rows), nil
}

// OrdersPDF renders the same rows as Orders as a printable report.
func (s *ExportService) OrdersPDF(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	orders, err := s.orders(ctx, opts)
	if err != nil {
		return nil, err
	}
	rows := export.OrderRows(orders, s.loc)

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, "Orders report", s.now().In(s.loc), rows); err != nil {
		return nil, fmt.Errorf("render orders pdf: %w", err)
	}
	name := export.Filename("orders", opts.Start, opts.End, s.now().In(s.loc))
	name = name[:len(name)-len(".csv")] + ".pdf"
	return &ExportResult{Filename: name, ContentType: pdfContentType, Content: buf.Bytes(), Count: len(rows)}, nil
}

// Revenue exports invoices as CSV.
func (s *ExportService) Revenue(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if opts.RestaurantID == "" {
		return nil, &ValidationError{Fields: []string{"restaurant_id"}}
	}
	q := gateway.Query{Resource: gateway.Invoices}.Where(gateway.Eq("restaurant_id", opts.RestaurantID))
	q = rangeFilters(q, opts).OrderBy("created_at", true)

	var invoices []models.Invoice
	if err := s.gw.Select(ctx, q, &invoices); err != nil {
		return nil, fmt.Errorf("export revenue: %w", err)
	}
	return s.csvResult("revenue", opts, export.RevenueRows(invoices, s.loc)), nil
}

// MenuItems exports the tenant's menu as CSV ordered by name.
func (s *ExportService) MenuItems(ctx context.Context, restaurantID string) (*ExportResult, error) {
	if restaurantID == "" {
		return nil, &ValidationError{Fields: []string{"restaurant_id"}}
	}
	q := gateway.Query{Resource: gateway.MenuItems, Expand: []string{"Category"}}.
		Where(gateway.Eq("restaurant_id", restaurantID)).
		OrderBy("name", false)

	var items []models.MenuItem
	if err := s.gw.Select(ctx, q, &items); err != nil {
		return nil, fmt.Errorf("export menu items: %w", err)
	}
	return s.csvResult("menu", ExportOptions{RestaurantID: restaurantID}, export.MenuRows(items)), nil
}

func (s *ExportService) csvResult(kind string, opts ExportOptions, rows []export.Record) *ExportResult {
	res := &ExportResult{
		Filename:    export.Filename(kind, opts.Start, opts.End, s.now().In(s.loc)),
		ContentType: csvContentType,
		Content:     []byte(export.EncodeCSV(rows)),
		Count:       len(rows),
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"export":     kind,
		"restaurant": opts.RestaurantID,
		"count":      res.Count,
	}).Info("Export generated")
	return res
}
