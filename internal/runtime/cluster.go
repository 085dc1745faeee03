package runtime

import (
	"errors"
	"sync"
)

// Cluster is the node's distribution handle. A launcher started without a
// node name is not alive and cannot take a cookie; the bootstrap layer
// decides aliveness before this process starts.
type Cluster struct {
	mu     sync.Mutex
	alive  bool
	cookie string
}

// NewCluster creates a cluster handle with the given aliveness.
func NewCluster(alive bool) *Cluster {
	return &Cluster{alive: alive}
}

// Alive reports whether the node participates in a cluster.
func (c *Cluster) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alive
}

// SetCookie assigns the shared cluster secret.
func (c *Cluster) SetCookie(cookie string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return errors.New("node is not alive")
	}
	c.cookie = cookie
	return nil
}

// Cookie returns the currently assigned secret.
func (c *Cluster) Cookie() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookie
}
