package events

import (
	"encoding/json"

	"github.com/littlemangalore/venue-booking/internal/model"
)

type Type string

const (
	BookingCreated Type = "booking.created"
	StatusChanged  Type = "booking.status_changed"
	PaymentUpdated Type = "booking.payment_updated"
	DateBlocked    Type = "calendar.date_blocked"
	DateUnblocked  Type = "calendar.date_unblocked"
)

// Event is the change notification pushed to subscribed admin clients so
// the dashboard does not have to poll.
type Event struct {
	Type        Type               `json:"type"`
	Booking     *model.Booking     `json:"booking,omitempty"`
	BlockedDate *model.BlockedDate `json:"blocked_date,omitempty"`
	ID          string             `json:"id,omitempty"`
}

// Client is one subscribed connection. Send is buffered; slow consumers
// miss events rather than blocking the hub.
type Client struct {
	Send chan []byte
}

func NewClient() *Client {
	return &Client{Send: make(chan []byte, 16)}
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}

		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					// client not keeping up, drop it
					delete(h.clients, c)
					close(c.Send)
				}
			}

		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Publish broadcasts an event to all subscribers. Safe on a nil hub and
// never blocks the publisher.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
	}
}
