package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/internal/application/ports"
)

func TestHub_PublishEnrutaSoloAlDueno(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	ana := &client{userID: "ana", send: make(chan []byte, 4)}
	luis := &client{userID: "luis", send: make(chan []byte, 4)}
	h.register <- ana
	h.register <- luis

	h.Publish(ports.Event{
		Type:    ports.EventStockAdjusted,
		UserID:  "ana",
		Payload: map[string]int{"current_stock": 12},
	})

	select {
	case msg := <-ana.send:
		var ev struct {
			Type    string         `json:"type"`
			Payload map[string]int `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, ports.EventStockAdjusted, ev.Type)
		assert.Equal(t, 12, ev.Payload["current_stock"])
	case <-time.After(time.Second):
		t.Fatal("el evento no llegó al cliente del dueño")
	}

	select {
	case <-luis.send:
		t.Fatal("el evento llegó a un usuario ajeno")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_EventoSinSuscriptoresNoBloquea(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.Publish(ports.Event{Type: ports.EventOrderUpdated, UserID: "nadie"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish bloqueó al caller sin suscriptores")
	}
}

func TestUpgradeRequired_PeticionPlanaRetorna426(t *testing.T) {
	app := fiber.New()
	app.Use("/ws", UpgradeRequired)
	app.Get("/ws", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
