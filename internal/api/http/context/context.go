// Package context carries the request's session state through fiber locals.
package context

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/profile-server/internal/model"
)

const (
	sessionKey   = "session"
	destroyedKey = "session_destroyed"
)

// Manager reads and writes session state on a request.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetSession replaces the request's session state.
func (m *Manager) SetSession(c *fiber.Ctx, state model.SessionState) {
	c.Locals(sessionKey, state)
}

// GetSession returns the request's session state and whether one was loaded.
func (m *Manager) GetSession(c *fiber.Ctx) (model.SessionState, bool) {
	state, ok := c.Locals(sessionKey).(model.SessionState)
	return state, ok
}

// MarkDestroyed records that the session was removed during the request so it
// is not saved again.
func (m *Manager) MarkDestroyed(c *fiber.Ctx) {
	c.Locals(destroyedKey, true)
}

func (m *Manager) Destroyed(c *fiber.Ctx) bool {
	destroyed, _ := c.Locals(destroyedKey).(bool)
	return destroyed
}
