// Package ws implementa el feed en vivo de la UI sobre websockets. El hub
// implementa ports.EventBroadcaster: los casos de uso publican eventos tras el
// commit y el hub los reparte solo a los clientes del usuario dueño del dato.
package ws

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/pkg/jwt"
)

var _ ports.EventBroadcaster = (*Hub)(nil)

// client conexión websocket de un usuario autenticado.
type client struct {
	userID string
	send   chan []byte
}

type envelope struct {
	userID  string
	payload []byte
}

// Hub mantiene el conjunto de clientes conectados y reparte los eventos.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan envelope
	log        zerolog.Logger
}

// NewHub construye el hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan envelope, 64),
		log:        log,
	}
}

// Run arranca el loop de despacho. Llamar en una goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug().Str("user_id", c.userID).Msg("cliente websocket conectado")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug().Str("user_id", c.userID).Msg("cliente websocket desconectado")
			}
		case ev := <-h.events:
			for c := range h.clients {
				if c.userID != ev.userID {
					continue
				}
				select {
				case c.send <- ev.payload:
				default:
					// Cliente lento: se desconecta antes que bloquear el hub.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish implementa ports.EventBroadcaster. Nunca bloquea al caller: si el
// buffer está lleno el evento se descarta (el feed es best-effort, el estado
// real siempre se puede releer por HTTP).
func (h *Hub) Publish(event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Msg("serializar evento websocket")
		return
	}
	select {
	case h.events <- envelope{userID: event.UserID, payload: payload}:
	default:
		h.log.Warn().Str("type", event.Type).Msg("buffer de eventos lleno, evento descartado")
	}
}

// UpgradeRequired exige que la petición sea un upgrade websocket.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler acepta la conexión websocket. El token JWT viaja en el query string
// (?token=...) porque los navegadores no permiten headers en el handshake.
func (h *Hub) Handler(jwtSecret string) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, err := jwt.Parse(jwtSecret, conn.Query("token"))
		if err != nil || userID == "" {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "token inválido"))
			_ = conn.Close()
			return
		}

		c := &client{userID: userID, send: make(chan []byte, 16)}
		h.register <- c

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range c.send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
		}()

		// El feed es de solo lectura: el read loop existe para detectar el cierre.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.unregister <- c
		<-done
		_ = conn.Close()
	})
}
