package inmemory

import (
	"sync"
	"time"

	documentsdomain "bookkeeping-app-go/internal/domain/documents"
)

// FormsCache holds the BIR form list until its TTL lapses.
type FormsCache struct {
	mu        sync.RWMutex
	forms     []documentsdomain.Form
	expiresAt time.Time
	now       func() time.Time
}

func NewFormsCache() *FormsCache {
	return &FormsCache{now: time.Now}
}

func (c *FormsCache) Get() ([]documentsdomain.Form, bool) {
	now := c.now()

	c.mu.RLock()
	forms, expiresAt := c.forms, c.expiresAt
	c.mu.RUnlock()
	if forms == nil {
		return nil, false
	}

	if !expiresAt.After(now) {
		c.mu.Lock()
		if !c.expiresAt.After(now) {
			c.forms = nil
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneForms(forms), true
}

func (c *FormsCache) Set(forms []documentsdomain.Form, ttl time.Duration) {
	if ttl <= 0 {
		c.Invalidate()
		return
	}

	cloned := cloneForms(forms)
	if cloned == nil {
		cloned = []documentsdomain.Form{}
	}

	c.mu.Lock()
	c.forms = cloned
	c.expiresAt = c.now().Add(ttl)
	c.mu.Unlock()
}

func (c *FormsCache) Invalidate() {
	c.mu.Lock()
	c.forms = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func cloneForms(forms []documentsdomain.Form) []documentsdomain.Form {
	if forms == nil {
		return nil
	}
	cloned := make([]documentsdomain.Form, len(forms))
	copy(cloned, forms)
	return cloned
}
