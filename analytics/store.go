// ABOUTME: Dashboard widget store with ordered per-dashboard widget lists
// ABOUTME: Add/remove are silent no-ops on invalid input; ids are prefixed ULIDs
package analytics

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/models"
)

// WidgetPrefix prefixes every generated widget id.
const WidgetPrefix = "w_"

// WidgetSpec describes a widget to add. Data may be left nil to get
// placeholder data for the type.
type WidgetSpec struct {
	Type   string             `json:"type"`
	Title  string             `json:"title"`
	Size   string             `json:"size"`
	Data   []models.DataPoint `json:"data,omitempty"`
	Config map[string]any     `json:"config,omitempty"`
}

// Store keeps dashboards in memory. Mutations are synchronous and visible to
// the next read; the mutex lets HTTP handlers share one store.
type Store struct {
	mu         sync.RWMutex
	saveMu     sync.Mutex
	dashboards []*models.Dashboard
	newID      func() string
	rng        *rand.Rand
	logger     *zap.Logger
}

type Option func(*Store)

// WithIDGenerator overrides widget id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithRand sets the random source used for sample data.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithDashboards replaces the seeded dashboard, e.g. with ones loaded from the database.
func WithDashboards(dashboards []models.Dashboard) Option {
	return func(s *Store) {
		s.dashboards = s.dashboards[:0]
		for i := range dashboards {
			d := cloneDashboard(dashboards[i])
			s.dashboards = append(s.dashboards, &d)
		}
	}
}

// NewStore returns a store seeded with DefaultDashboard.
func NewStore(opts ...Option) *Store {
	seed := DefaultDashboard()
	s := &Store{
		dashboards: []*models.Dashboard{&seed},
		newID:      ulidGenerator(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func ulidGenerator() func() string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return WidgetPrefix + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	}
}

// CreateDashboard appends an empty dashboard and returns it.
func (s *Store) CreateDashboard(name string) models.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &models.Dashboard{
		ID:      s.nextDashboardID(),
		Name:    name,
		Widgets: []models.Widget{},
	}
	s.dashboards = append(s.dashboards, d)
	return cloneDashboard(*d)
}

// Dashboard returns a copy of the dashboard with the given id.
func (s *Store) Dashboard(id string) (models.Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := s.find(id)
	if d == nil {
		return models.Dashboard{}, false
	}
	return cloneDashboard(*d), true
}

// Dashboards returns copies of all dashboards in creation order.
func (s *Store) Dashboards() []models.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Dashboard, len(s.dashboards))
	for i, d := range s.dashboards {
		out[i] = cloneDashboard(*d)
	}
	return out
}

// Save hands a snapshot of every dashboard to write. Saves are serialized and
// each takes its snapshot inside the critical section, so the last write
// always reflects the latest state.
func (s *Store) Save(write func([]models.Dashboard) error) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return write(s.Dashboards())
}

// AddWidget appends a widget to the dashboard. A blank title or unknown
// dashboard is a no-op and returns false. Unknown sizes fall back to medium.
func (s *Store) AddWidget(dashboardID string, spec WidgetSpec) (models.Widget, bool) {
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		return models.Widget{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(dashboardID)
	if d == nil {
		return models.Widget{}, false
	}

	size := spec.Size
	if !models.IsValidWidgetSize(size) {
		size = models.SizeMedium
	}

	data := spec.Data
	if data == nil {
		data = SampleData(spec.Type, s.rng)
	}

	config := spec.Config
	if config == nil {
		config = map[string]any{}
	}

	w := models.Widget{
		ID:     s.uniqueID(d),
		Type:   spec.Type,
		Title:  title,
		Size:   size,
		Data:   data,
		Config: config,
	}
	d.Widgets = append(d.Widgets, w)

	s.logger.Debug("widget added",
		zap.String("dashboard", dashboardID),
		zap.String("widget", w.ID),
		zap.String("type", w.Type))

	return cloneWidget(w), true
}

// RemoveWidget deletes the widget with widgetID. Returns false when nothing
// was removed.
func (s *Store) RemoveWidget(dashboardID, widgetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(dashboardID)
	if d == nil {
		return false
	}

	for i, w := range d.Widgets {
		if w.ID == widgetID {
			d.Widgets = append(d.Widgets[:i:i], d.Widgets[i+1:]...)
			s.logger.Debug("widget removed",
				zap.String("dashboard", dashboardID),
				zap.String("widget", widgetID))
			return true
		}
	}
	return false
}

func (s *Store) nextDashboardID() string {
	for n := len(s.dashboards) + 1; ; n++ {
		id := strconv.Itoa(n)
		if s.find(id) == nil {
			return id
		}
	}
}

func (s *Store) find(id string) *models.Dashboard {
	for _, d := range s.dashboards {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// uniqueID keeps asking the generator until it yields an id not already on
// the dashboard. Injected generators may repeat; the ULID one does not.
func (s *Store) uniqueID(d *models.Dashboard) string {
	for {
		id := s.newID()
		taken := false
		for _, w := range d.Widgets {
			if w.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func cloneWidget(w models.Widget) models.Widget {
	out := w
	out.Data = make([]models.DataPoint, len(w.Data))
	copy(out.Data, w.Data)
	out.Config = make(map[string]any, len(w.Config))
	for k, v := range w.Config {
		out.Config[k] = v
	}
	return out
}

func cloneDashboard(d models.Dashboard) models.Dashboard {
	out := d
	out.Widgets = make([]models.Widget, len(d.Widgets))
	for i, w := range d.Widgets {
		out.Widgets[i] = cloneWidget(w)
	}
	return out
}
