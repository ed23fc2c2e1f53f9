package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karlo195/StardewMods/internal/model/core"
)

// Context holds the current session state shared across handlers and logging.
type Context struct {
	mu      sync.RWMutex
	session *core.Session
}

// NewContext creates a Context with a placeholder session.
func NewContext() *Context {
	return &Context{
		session: &core.Session{FarmName: "No farm loaded"},
	}
}

// Begin starts a new session with a fresh run ID.
func (c *Context) Begin(farmName string, distance int, interval uint, attachments []string) *core.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &core.Session{
		ID:          uuid.NewString(),
		FarmName:    farmName,
		StartedAt:   time.Now(),
		Distance:    distance,
		Interval:    interval,
		Attachments: attachments,
	}
	return c.session
}

// End stamps the session's end time.
func (c *Context) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.EndedAt = time.Now()
}

// Get returns the current session.
func (c *Context) Get() *core.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// ID returns the current session's run ID, or "" before Begin.
func (c *Context) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.ID
}

// FarmName returns the current session's farm name.
func (c *Context) FarmName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.FarmName
}
