// ABOUTME: Charm KV client wrapper used by dashboard layout sync
// ABOUTME: Syncs after writes and before stale reads; any kv.KV-shaped store can back it

package charm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

var errLocalStore = errors.New("local store has no charm account")

// store is the subset of *kv.KV the client needs.
type store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
}

type Client struct {
	mu       sync.Mutex
	kv       store
	config   *Config
	remote   bool
	syncedAt time.Time
	userID   string
}

// NewClient opens the Charm KV database for AppName on cfg.Host.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// kv reads the host from the environment
	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{kv: db, config: cfg, remote: true}
	if cfg.AutoSync {
		c.syncLocked()
	}
	return c, nil
}

// Close is a no-op; charm/kv cleans up its badger instance on exit.
func (c *Client) Close() error {
	return nil
}

func (c *Client) Config() *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// ID returns the charm account id of this device. It is looked up once.
func (c *Client) ID() (string, error) {
	if !c.remote {
		return "", errLocalStore
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID != "" {
		return c.userID, nil
	}

	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	id, err := cc.ID()
	if err != nil {
		return "", err
	}
	c.userID = id
	return id, nil
}

// IsConnected reports whether the charm server knows this device. A local
// store is always connected.
func (c *Client) IsConnected() bool {
	if !c.remote {
		return true
	}
	_, err := c.ID()
	return err == nil
}

func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.Sync(); err != nil {
		return err
	}
	c.syncedAt = time.Now()
	return nil
}

// syncLocked pulls remote changes, ignoring failures so the local copy stays usable offline.
func (c *Client) syncLocked() {
	if err := c.kv.Sync(); err == nil {
		c.syncedAt = time.Now()
	}
}

func (c *Client) stale() bool {
	return c.config.AutoSync && c.config.StaleThreshold > 0 && time.Since(c.syncedAt) > c.config.StaleThreshold
}

func (c *Client) Get(key []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale() {
		c.syncLocked()
	}
	return c.kv.Get(key)
}

func (c *Client) Set(key, value []byte) error {
	return c.mutate(func(s store) error { return s.Set(key, value) })
}

func (c *Client) Delete(key []byte) error {
	return c.mutate(func(s store) error { return s.Delete(key) })
}

// Reset wipes the KV store.
func (c *Client) Reset() error {
	return c.mutate(store.Reset)
}

// mutate applies fn and, with auto-sync on, pushes the change before
// releasing the lock so writes reach the server in order.
func (c *Client) mutate(fn func(store) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(c.kv); err != nil {
		return err
	}
	if c.config.AutoSync {
		c.syncLocked()
	}
	return nil
}

func (c *Client) Keys() ([][]byte, error) {
	return c.KeysWithPrefix(nil)
}

// KeysWithPrefix returns stored keys starting with prefix.
func (c *Client) KeysWithPrefix(prefix []byte) ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale() {
		c.syncLocked()
	}

	all, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	if len(prefix) == 0 {
		return all, nil
	}

	var matched [][]byte
	for _, k := range all {
		if bytes.HasPrefix(k, prefix) {
			matched = append(matched, k)
		}
	}
	return matched, nil
}
