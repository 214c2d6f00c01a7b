package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/events"
)

// EventsHandler streams collection change notifications over a websocket so
// open dashboard views refresh without polling.
type EventsHandler struct {
	bus    *events.Bus
	logger zerolog.Logger
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(bus *events.Bus, logger zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		bus:    bus,
		logger: logger.With().Str("component", "events_handler").Logger(),
	}
}

// Register binds the websocket upgrade under the provided router group.
func (h *EventsHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *EventsHandler) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	changes, cancel := h.bus.Subscribe()
	defer cancel()

	// Reads are only consumed to detect the peer closing the socket.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := conn.WriteJSON(change); err != nil {
				h.logger.Debug().Err(err).Msg("event stream write failed")
				return
			}
		}
	}
}
