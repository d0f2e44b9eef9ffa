package state

import (
	"errors"
	"sync"

	"shardvault/backend/cache"
	"shardvault/backend/vault"
	"shardvault/shared/constants"
)

var VaultLockedError = errors.New("vault locked")

// Context holds the process-wide vault state: the optional unlocked session,
// the streaming listener's bound port, and the decrypted asset cache. Each
// cell has its own lock and none are ever held together. A single Context is
// constructed at startup and handed to every component that needs it.
type Context struct {
	sessionMu sync.Mutex
	session   *vault.Session

	portMu     sync.Mutex
	streamPort int

	Cache *cache.AssetCache
}

func NewContext() *Context {
	return &Context{
		Cache: cache.New(constants.MaxCachedAssets),
	}
}

// Unlock installs a new session, closing any session it replaces.
func (c *Context) Unlock(session *vault.Session) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	if c.session != nil {
		c.session.Close()
	}

	c.session = session
}

// Lock closes and clears the current session. Locking an already locked
// vault is a no-op.
func (c *Context) Lock() {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	if c.session != nil {
		c.session.Close()
		c.session = nil
	}
}

func (c *Context) Unlocked() bool {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	return c.session != nil
}

// WithSession runs fn against the unlocked session, holding the session lock
// until fn returns. Returns VaultLockedError if no vault is unlocked.
// Streaming reads must copy the key and metadata they need inside fn and do
// their blob reads and decryption after it returns.
func (c *Context) WithSession(fn func(session *vault.Session) error) error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	if c.session == nil {
		return VaultLockedError
	}

	return fn(c.session)
}

// SetStreamPort records the streaming listener's port, set once when the
// listener binds at startup.
func (c *Context) SetStreamPort(port int) {
	c.portMu.Lock()
	defer c.portMu.Unlock()

	c.streamPort = port
}

// StreamPort returns the streaming listener's port, or 0 if the listener
// has not bound yet.
func (c *Context) StreamPort() int {
	c.portMu.Lock()
	defer c.portMu.Unlock()

	return c.streamPort
}
