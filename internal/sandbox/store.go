package sandbox

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	errQueueFull      = errors.New("report queue is full")
	errReportNotFound = errors.New("report does not exist")
)

type report struct {
	id        int64
	phrases   []string
	geoIDs    []int64
	createdAt time.Time
}

// reportStore keeps the reports of every token, like the real service
// which stores a limited number of reports per account.
type reportStore struct {
	mu         sync.Mutex
	nextID     int64
	maxReports int
	readyAfter time.Duration
	now        func() time.Time
	reports    map[string]map[int64]*report
}

func newReportStore(maxReports int, readyAfter time.Duration, now func() time.Time) *reportStore {
	return &reportStore{
		nextID:     11053065,
		maxReports: maxReports,
		readyAfter: readyAfter,
		now:        now,
		reports:    make(map[string]map[int64]*report),
	}
}

func (s *reportStore) create(token string, phrases []string, geoIDs []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.reports[token]
	if owned == nil {
		owned = make(map[int64]*report)
		s.reports[token] = owned
	}
	if len(owned) >= s.maxReports {
		return 0, errQueueFull
	}

	id := s.nextID
	s.nextID++
	owned[id] = &report{
		id:        id,
		phrases:   append([]string(nil), phrases...),
		geoIDs:    append([]int64(nil), geoIDs...),
		createdAt: s.now(),
	}
	return id, nil
}

// get returns a copy of the report and whether it has finished generating
func (s *reportStore) get(token string, id int64) (report, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[token][id]
	if !ok {
		return report{}, false, errReportNotFound
	}
	return *r, s.ready(r), nil
}

func (s *reportStore) delete(token string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[token][id]; !ok {
		return errReportNotFound
	}
	delete(s.reports[token], id)
	return nil
}

type reportState struct {
	id    int64
	ready bool
}

// list returns the token's reports ordered by id
func (s *reportStore) list(token string) []reportState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]reportState, 0, len(s.reports[token]))
	for _, r := range s.reports[token] {
		out = append(out, reportState{id: r.id, ready: s.ready(r)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *reportStore) ready(r *report) bool {
	return !s.now().Before(r.createdAt.Add(s.readyAfter))
}
