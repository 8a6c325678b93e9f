package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/yeremiapane/restaurant-console/utils"
)

const subjectPrefix = "changes."

// NATSBridge shares change events between service instances so that every
// instance can invalidate its own caches.
type NATSBridge struct {
	conn *nats.Conn
	sub  *nats.Subscription
	hub  *Hub
}

// ConnectNATS connects to the server at url and wires the bridge into hub.
func ConnectNATS(url string, hub *Hub) (*NATSBridge, error) {
	conn, err := nats.Connect(url, nats.Name("restaurant-console-"+hub.ID()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	b := &NATSBridge{conn: conn, hub: hub}
	b.sub, err = conn.Subscribe(subjectPrefix+">", b.receive)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s>: %w", subjectPrefix, err)
	}

	hub.SetForwarder(b)
	return b, nil
}

// Subject returns the subject an event is published on.
func Subject(evt ChangeEvent) string {
	if evt.RestaurantID == "" {
		return subjectPrefix + "_global"
	}
	return subjectPrefix + evt.RestaurantID
}

func (b *NATSBridge) Forward(evt ChangeEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.conn.Publish(Subject(evt), data)
}

func (b *NATSBridge) receive(msg *nats.Msg) {
	var evt ChangeEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		utils.ErrorLogger.Printf("Error decoding change event from %s: %v", msg.Subject, err)
		return
	}
	// our own events were already delivered by Publish
	if evt.Origin == b.hub.ID() {
		return
	}
	b.hub.Deliver(evt)
}

func (b *NATSBridge) Close() error {
	b.hub.SetForwarder(nil)
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	return b.conn.Drain()
}
