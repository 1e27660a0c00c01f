// ABOUTME: Dashboard layout sync over Charm KV
// ABOUTME: Push stores one JSON record per dashboard; Pull reads them back in order

package charm

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/models"
)

const (
	layoutPrefix = "dashboard:"
	pushedAtKey  = "meta:pushed_at"
)

type layoutRecord struct {
	Position  int              `json:"position"`
	Dashboard models.Dashboard `json:"dashboard"`
}

// Status summarizes what the KV store holds.
type Status struct {
	Host       string     `json:"host"`
	AutoSync   bool       `json:"auto_sync"`
	Connected  bool       `json:"connected"`
	Dashboards int        `json:"dashboards"`
	PushedAt   *time.Time `json:"pushed_at,omitempty"`
}

type LayoutSync struct {
	client *Client
	logger *zap.Logger
	now    func() time.Time
}

func NewLayoutSync(client *Client, logger *zap.Logger) *LayoutSync {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LayoutSync{client: client, logger: logger, now: time.Now}
}

func layoutKey(id string) []byte {
	return []byte(layoutPrefix + id)
}

// Push replaces the stored layouts with dashboards. Layouts for dashboards
// no longer present are removed.
func (s *LayoutSync) Push(dashboards []models.Dashboard) error {
	keep := make(map[string]bool, len(dashboards))
	for i, d := range dashboards {
		data, err := json.Marshal(layoutRecord{Position: i, Dashboard: d})
		if err != nil {
			return fmt.Errorf("failed to marshal dashboard %s: %w", d.ID, err)
		}
		if err := s.client.Set(layoutKey(d.ID), data); err != nil {
			return fmt.Errorf("failed to store dashboard %s: %w", d.ID, err)
		}
		keep[string(layoutKey(d.ID))] = true
	}

	keys, err := s.client.KeysWithPrefix([]byte(layoutPrefix))
	if err != nil {
		return fmt.Errorf("failed to list layouts: %w", err)
	}
	for _, k := range keys {
		if keep[string(k)] {
			continue
		}
		if err := s.client.Delete(k); err != nil {
			return fmt.Errorf("failed to delete stale layout %s: %w", k, err)
		}
	}

	pushedAt, err := s.now().UTC().MarshalText()
	if err != nil {
		return fmt.Errorf("failed to encode push time: %w", err)
	}
	if err := s.client.Set([]byte(pushedAtKey), pushedAt); err != nil {
		return fmt.Errorf("failed to store push time: %w", err)
	}

	s.logger.Info("dashboards pushed", zap.Int("count", len(dashboards)))
	return nil
}

// Pull syncs with the server and returns the stored layouts in push order.
func (s *LayoutSync) Pull() ([]models.Dashboard, error) {
	if err := s.client.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync: %w", err)
	}

	records, err := s.records()
	if err != nil {
		return nil, err
	}

	out := make([]models.Dashboard, len(records))
	for i, r := range records {
		out[i] = r.Dashboard
	}

	s.logger.Info("dashboards pulled", zap.Int("count", len(out)))
	return out, nil
}

func (s *LayoutSync) records() ([]layoutRecord, error) {
	keys, err := s.client.KeysWithPrefix([]byte(layoutPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	records := make([]layoutRecord, 0, len(keys))
	for _, k := range keys {
		data, err := s.client.Get(k)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", k, err)
		}
		var r layoutRecord
		if err := json.Unmarshal(data, &r); err != nil {
			s.logger.Warn("skipping unreadable layout",
				zap.String("key", strings.TrimPrefix(string(k), layoutPrefix)),
				zap.Error(err))
			continue
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	return records, nil
}

// Status reports the connection and what was last pushed.
func (s *LayoutSync) Status() (*Status, error) {
	cfg := s.client.Config()
	st := &Status{
		Host:      cfg.Host,
		AutoSync:  cfg.AutoSync,
		Connected: s.client.IsConnected(),
	}

	keys, err := s.client.KeysWithPrefix([]byte(layoutPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	st.Dashboards = len(keys)

	raw, err := s.client.Get([]byte(pushedAtKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to read push time: %w", err)
	default:
		var t time.Time
		if err := t.UnmarshalText(raw); err == nil {
			st.PushedAt = &t
		}
	}

	return st, nil
}
