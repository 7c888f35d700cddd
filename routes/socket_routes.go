package routes

import (
	"warehouse-app/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func SetupSocketRoutes(app *fiber.App, hub *events.Hub, logger *zap.Logger) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/events", websocket.New(func(conn *websocket.Conn) {
		clientID := uuid.NewString()
		hub.Register(clientID, conn)
		logger.Info("websocket client connected", zap.String("client_id", clientID))

		defer func() {
			hub.Unregister(clientID)
			logger.Info("websocket client disconnected", zap.String("client_id", clientID))
		}()

		// Clients are push-only; drain reads until the peer goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
