package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Variantes de notificación, equivalentes a los toasts de la UI.
const (
	VariantSuccess     = "success"
	VariantDestructive = "destructive"
)

// Notification es el aviso transitorio que produce cada mutación: título,
// mensaje y variante. Los fallos llevan el mensaje del backend cuando existe.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Variant   string    `json:"variant"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationCenter guarda las últimas notificaciones en un buffer acotado.
// Es el sustituto servidor del sistema de toasts: la UI consulta las
// recientes en lugar de recibirlas empujadas.
type NotificationCenter struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

// NewNotificationCenter construye el centro con capacidad max (mínimo 1).
func NewNotificationCenter(max int) *NotificationCenter {
	if max < 1 {
		max = 1
	}
	return &NotificationCenter{max: max}
}

// Publish agrega una notificación, descartando la más antigua si el buffer está lleno.
func (c *NotificationCenter) Publish(title, message, variant string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Variant:   variant,
		CreatedAt: time.Now(),
	})
	if len(c.items) > c.max {
		c.items = c.items[len(c.items)-c.max:]
	}
}

// Recent devuelve las notificaciones guardadas, la más nueva primero.
func (c *NotificationCenter) Recent() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, len(c.items))
	for i := len(c.items) - 1; i >= 0; i-- {
		out = append(out, c.items[i])
	}
	return out
}
