package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/csg33k/hrnet/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	fieldFailures   map[domain.Field]int64
	rejectedSubmits int64
	commits         int64
	hires           map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		fieldFailures: make(map[domain.Field]int64),
		hires:         make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// ValidationFailed counts a rejected submit and each failing field.
func (m *Metrics) ValidationFailed(fields []domain.Field) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectedSubmits++
	for _, f := range fields {
		m.fieldFailures[f]++
	}
}

// Committed counts a record handed to the store.
func (m *Metrics) Committed() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
}

// Hired counts a persisted employee under its department.
func (m *Metrics) Hired(department string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hires[department]++
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests        map[string]int64       `json:"requests"`
	FieldFailures   map[domain.Field]int64 `json:"field_failures"`
	RejectedSubmits int64                  `json:"rejected_submits"`
	Commits         int64                  `json:"commits"`
	Hires           map[string]int64       `json:"hires_by_department"`
}

// Snapshot copies the counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Requests:        make(map[string]int64, len(m.requestCount)),
		FieldFailures:   make(map[domain.Field]int64, len(m.fieldFailures)),
		RejectedSubmits: m.rejectedSubmits,
		Commits:         m.commits,
		Hires:           make(map[string]int64, len(m.hires)),
	}
	for k, v := range m.requestCount {
		s.Requests[k] = v
	}
	for k, v := range m.fieldFailures {
		s.FieldFailures[k] = v
	}
	for k, v := range m.hires {
		s.Hires[k] = v
	}
	return s
}
