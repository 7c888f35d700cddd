package events

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Event names published by the engine.
const (
	EventOrderCreated       = "orderCreated"
	EventOrderStatusUpdated = "orderStatusUpdated"
	EventInventoryUpdated   = "inventoryUpdated"
	EventLowStockAlert      = "lowStockAlert"
	EventReceivingCompleted = "receivingCompleted"
	EventOccupancyUpdated   = "locationOccupancyUpdated"
	EventTaskAssigned       = "taskAssigned"
	EventTaskCompleted      = "taskCompleted"
)

// Publisher broadcasts named events to every connected client. Delivery is
// fire-and-forget: nothing here ever fails a business mutation, failed
// writes are logged and the client dropped on its next read error.
type Publisher struct {
	hub     *Hub
	limiter *RateLimiter
	logger  *zap.Logger
}

func NewPublisher(hub *Hub, limiter *RateLimiter, logger *zap.Logger) *Publisher {
	return &Publisher{hub: hub, limiter: limiter, logger: logger}
}

func (p *Publisher) Publish(event string, data map[string]interface{}) {
	if p == nil || p.hub == nil {
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"data":      data,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		p.logger.Warn("failed to marshal event payload",
			zap.String("event", event), zap.Error(err))
		return
	}

	p.hub.each(func(clientID string, c *client) {
		if p.limiter != nil && !p.limiter.Allow(clientID, event) {
			return
		}
		if err := c.write(websocket.TextMessage, msg); err != nil {
			p.logger.Warn("failed to push event to client",
				zap.String("event", event),
				zap.String("client_id", clientID),
				zap.Error(err))
		}
	})
}
