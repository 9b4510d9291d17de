package live

import (
	"encoding/json"
	"testing"
	"time"

	"kedai/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
	}

	// register client
	hub.register <- client

	// broadcast an order event
	order := models.Order{
		ID:    "o1",
		Total: 10,
		CustomerDetails: models.CustomerDetails{
			Name: "Aisyah", Email: "aisyah@example.com", Phone: "0123456789", Address: "12 Jalan Besar",
		},
	}
	hub.OrderPlaced(order)

	select {
	case got := <-client.Send:
		var evt outboundEvent
		if err := json.Unmarshal(got, &evt); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if evt.Action != "order_placed" || evt.Order.ID != "o1" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}
