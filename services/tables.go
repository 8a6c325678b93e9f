package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/utils"
)

type TableInput struct {
	RestaurantID string `json:"restaurant_id"`
	TableNumber  string `json:"table_number"`
	Capacity     int    `json:"capacity"`
	Status       string `json:"status"`
}

type TableService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
}

func NewTableService(gw *gateway.Gateway, cache *querycache.Cache) *TableService {
	return &TableService{gw: gw, cache: cache}
}

func (s *TableService) fetch(ctx context.Context, tenant string) ([]models.Table, error) {
	tables := []models.Table{}
	q := gateway.Query{Resource: gateway.Tables}.
		Where(gateway.Eq("restaurant_id", tenant)).
		OrderBy("table_number", false)
	if err := s.gw.Select(ctx, q, &tables); err != nil {
		return nil, fmt.Errorf("fetch tables: %w", err)
	}
	return tables, nil
}

// Watch opens a live table list ordered by table number.
func (s *TableService) Watch(tenant string) *LiveQuery[[]models.Table] {
	return newLiveQuery(s.gw, s.cache, tenant, liveConfig[[]models.Table]{
		channel: func(t string) string { return "tables-" + t },
		bindings: func(t string) []gateway.Binding {
			return []gateway.Binding{
				{Schema: "public", Table: gateway.Tables, Event: "*", Filter: "restaurant_id=eq." + t},
			}
		},
		prefix:    tablesPrefix,
		key:       tablesPrefix,
		staleTime: tablesStaleTime,
		empty:     func() []models.Table { return []models.Table{} },
		fetch:     s.fetch,
	})
}

func (s *TableService) List(ctx context.Context, tenant string) ([]models.Table, error) {
	if tenant == "" {
		return []models.Table{}, nil
	}
	return querycache.Fetch(ctx, s.cache, tablesPrefix(tenant), tablesStaleTime, func(ctx context.Context) ([]models.Table, error) {
		return s.fetch(ctx, tenant)
	})
}

func (s *TableService) Get(ctx context.Context, id string) (*models.Table, error) {
	return querycache.Fetch(ctx, s.cache, tableKey(id), 0, func(ctx context.Context) (*models.Table, error) {
		var t models.Table
		if err := s.gw.First(ctx, gateway.Query{Resource: gateway.Tables}.Where(gateway.Eq("id", id)), &t); err != nil {
			return nil, err
		}
		return &t, nil
	})
}

// ByNumber resolves a printed table number such as "T1" to its row. It
// returns nil without error when there is no such table.
func (s *TableService) ByNumber(ctx context.Context, tenant, number string) (*models.Table, error) {
	if tenant == "" || number == "" {
		return nil, nil
	}
	key := querycache.K("tables", tenant, "number", number)
	return querycache.Fetch(ctx, s.cache, key, tablesStaleTime, func(ctx context.Context) (*models.Table, error) {
		var t models.Table
		q := gateway.Query{Resource: gateway.Tables}.
			Where(gateway.Eq("restaurant_id", tenant), gateway.Eq("table_number", number))
		if err := s.gw.First(ctx, q, &t); err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				return nil, nil
			}
			utils.ErrorLogger.Printf("Error fetching table by number: %v", err)
			return nil, nil
		}
		return &t, nil
	})
}

func (s *TableService) Create(ctx context.Context, in TableInput) (*models.Table, error) {
	var c check
	c.require(in.RestaurantID != "", "restaurant_id")
	c.require(in.TableNumber != "", "table_number")
	c.require(in.Capacity >= 0, "capacity")
	if err := c.err(); err != nil {
		return nil, err
	}

	t := models.Table{
		RestaurantID: in.RestaurantID,
		TableNumber:  in.TableNumber,
		Capacity:     in.Capacity,
		Status:       in.Status,
	}
	if err := s.gw.Insert(ctx, &t); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	s.cache.Invalidate(tablesPrefix(t.RestaurantID))
	utils.InfoLogger.Printf("New table created: %s (restaurant=%s)", t.TableNumber, t.RestaurantID)
	return &t, nil
}

// Update applies the non-empty fields of in.
func (s *TableService) Update(ctx context.Context, id string, in TableInput) (*models.Table, error) {
	values := map[string]interface{}{}
	if in.TableNumber != "" {
		values["table_number"] = in.TableNumber
	}
	if in.Capacity > 0 {
		values["capacity"] = in.Capacity
	}
	if in.Status != "" {
		values["status"] = in.Status
	}
	if len(values) == 0 {
		return nil, &ValidationError{Fields: []string{"table_number", "capacity", "status"}}
	}
	return s.update(ctx, id, values)
}

func (s *TableService) UpdateStatus(ctx context.Context, id, status string) (*models.Table, error) {
	if status == "" {
		return nil, &ValidationError{Fields: []string{"status"}}
	}
	return s.update(ctx, id, map[string]interface{}{"status": status})
}

func (s *TableService) update(ctx context.Context, id string, values map[string]interface{}) (*models.Table, error) {
	var t models.Table
	if err := s.gw.Update(ctx, id, values, &t); err != nil {
		return nil, fmt.Errorf("update table %s: %w", id, err)
	}
	s.cache.Invalidate(tablesPrefix(t.RestaurantID))
	s.cache.Invalidate(tableKey(t.ID))
	utils.InfoLogger.Printf("Table %s updated (status=%s)", t.TableNumber, t.Status)
	return &t, nil
}

func (s *TableService) Delete(ctx context.Context, id string) error {
	var t models.Table
	if err := s.gw.Delete(ctx, id, &t); err != nil {
		return fmt.Errorf("delete table %s: %w", id, err)
	}
	s.cache.Invalidate(tablesPrefix(t.RestaurantID))
	s.cache.Invalidate(tableKey(id))
	utils.InfoLogger.Printf("Table %s deleted", t.TableNumber)
	return nil
}
