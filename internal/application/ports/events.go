package ports

// Tipos de evento publicados tras un commit exitoso.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventStockAdjusted   = "stock.adjusted"
	EventOrderCreated    = "order.created"
	EventOrderUpdated    = "order.updated"
	EventOrderDeleted    = "order.deleted"
	EventSupplierChanged = "supplier.changed"
)

// Event evento de dominio para los clientes suscritos (feed en vivo de la UI).
// Se publica solo después de que la transacción confirmó; nunca dentro de ella.
type Event struct {
	Type    string `json:"type"`
	UserID  string `json:"-"` // enrutamiento: solo los clientes del dueño lo reciben
	Payload any    `json:"payload,omitempty"`
}

// EventBroadcaster puerto de publicación/suscripción desacoplado del transporte.
// La implementación websocket vive en interfaces/ws; un no-op sirve para tests.
type EventBroadcaster interface {
	Publish(event Event)
}

// NopBroadcaster descarta todos los eventos (tests y arranques sin hub).
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(Event) {}
