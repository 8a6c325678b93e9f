package gateway

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yeremiapane/restaurant-console/realtime"
)

// Binding selects change events by schema, table, event type and an
// optional "column=eq.value" filter. Event "*" matches every action.
type Binding struct {
	Schema string
	Table  string
	Event  string
	Filter string
}

func (b Binding) matches(evt realtime.ChangeEvent) bool {
	if b.Schema != "" && b.Schema != evt.Schema {
		return false
	}
	if b.Table != evt.Table {
		return false
	}
	if b.Event != "" && b.Event != "*" && !strings.EqualFold(b.Event, evt.Action) {
		return false
	}
	if b.Filter == "" {
		return true
	}

	col, val, ok := parseFilter(b.Filter)
	if !ok {
		return false
	}
	switch col {
	case "restaurant_id":
		return evt.RestaurantID == val
	case "id":
		return evt.RecordID == val
	}
	// events carry no row data; other columns cannot be checked
	return true
}

func parseFilter(f string) (column, value string, ok bool) {
	column, rest, found := strings.Cut(f, "=")
	if !found {
		return "", "", false
	}
	value, found = strings.CutPrefix(rest, "eq.")
	if !found {
		return "", "", false
	}
	return column, value, true
}

type listener struct {
	binding  Binding
	callback func(realtime.ChangeEvent)
}

// Channel is a named change subscription. Build it with On, then call
// Subscribe. Remove it with Gateway.RemoveChannel.
type Channel struct {
	name string
	gw   *Gateway

	mu        sync.Mutex
	listeners []listener
	unsub     func()
	closed    atomic.Bool
}

func (g *Gateway) Channel(name string) *Channel {
	return &Channel{name: name, gw: g}
}

func (c *Channel) Name() string {
	return c.name
}

func (c *Channel) On(b Binding, cb func(realtime.ChangeEvent)) *Channel {
	c.mu.Lock()
	c.listeners = append(c.listeners, listener{binding: b, callback: cb})
	c.mu.Unlock()
	return c
}

// Subscribe starts delivering matching events to the channel's callbacks.
func (c *Channel) Subscribe() *Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsub != nil || c.closed.Load() {
		return c
	}
	if c.gw.hub != nil {
		c.unsub = c.gw.hub.Subscribe(c.dispatch)
	}

	c.gw.mu.Lock()
	c.gw.channels[c] = struct{}{}
	c.gw.mu.Unlock()
	return c
}

func (c *Channel) dispatch(evt realtime.ChangeEvent) {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	ls := append([]listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range ls {
		if c.closed.Load() {
			return
		}
		if l.binding.matches(evt) {
			l.callback(evt)
		}
	}
}

// RemoveChannel stops the channel. No callback starts after it returns.
func (g *Gateway) RemoveChannel(c *Channel) {
	if c == nil {
		return
	}
	c.closed.Store(true)

	c.mu.Lock()
	unsub := c.unsub
	c.unsub = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}

	g.mu.Lock()
	delete(g.channels, c)
	g.mu.Unlock()
}

// ChannelCount reports the number of subscribed channels.
func (g *Gateway) ChannelCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.channels)
}
