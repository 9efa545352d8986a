package model

import (
	"time"
)

// SeenSet
type SeenEntry struct {
	ID          string    `json:"id"`
	FirstSeenAt time.Time `json:"first_seen_at"`
}

// SeenSet 채널별로 이미 확인한 동영상 ID 목록을 추가된 순서대로 보관한다.
// 최대 개수를 초과하면 가장 먼저 추가된 항목부터 제거되며, 조회 여부는 순서에 영향을 주지 않는다.
type SeenSet struct {
	Entries []*SeenEntry `json:"entries"`

	index map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{
		Entries: make([]*SeenEntry, 0),

		index: make(map[string]struct{}),
	}
}

func (s *SeenSet) buildIndex() {
	if s.index != nil {
		return
	}

	s.index = make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		s.index[e.ID] = struct{}{}
	}
}

func (s *SeenSet) Contains(id string) bool {
	s.buildIndex()

	_, exists := s.index[id]
	return exists
}

// Add 처음 보는 ID라면 목록의 마지막에 추가하고 true를 반환한다.
func (s *SeenSet) Add(id string, seenAt time.Time) bool {
	if s.Contains(id) == true {
		return false
	}

	s.Entries = append(s.Entries, &SeenEntry{ID: id, FirstSeenAt: seenAt})
	s.index[id] = struct{}{}

	return true
}

// Evict 항목 수가 max를 넘으면 가장 오래된 항목부터 제거하고, 제거된 ID 목록을 반환한다.
func (s *SeenSet) Evict(max int) []string {
	if max <= 0 || len(s.Entries) <= max {
		return nil
	}

	s.buildIndex()

	n := len(s.Entries) - max
	evicted := make([]string, 0, n)
	for _, e := range s.Entries[:n] {
		delete(s.index, e.ID)
		evicted = append(evicted, e.ID)
	}

	entries := make([]*SeenEntry, max)
	copy(entries, s.Entries[n:])
	s.Entries = entries

	return evicted
}

// compact 저장된 문서에서 읽어들인 빈 항목을 제거하고 색인을 다시 만든다.
func (s *SeenSet) compact() {
	entries := make([]*SeenEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e != nil {
			entries = append(entries, e)
		}
	}
	s.Entries = entries
	s.index = nil
}

func (s *SeenSet) Len() int {
	return len(s.Entries)
}

func (s *SeenSet) IDs() []string {
	ids := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func (s *SeenSet) Clone() *SeenSet {
	c := NewSeenSet()
	for _, e := range s.Entries {
		if e == nil {
			continue
		}
		c.Add(e.ID, e.FirstSeenAt)
	}
	return c
}

// ErrorState
type ErrorState struct {
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// State
type State struct {
	Seen   map[string]*SeenSet    `json:"seen"`
	Errors map[string]*ErrorState `json:"errors"`
}

func NewState() *State {
	return &State{
		Seen:   make(map[string]*SeenSet),
		Errors: make(map[string]*ErrorState),
	}
}

func (s *State) normalize() {
	if s.Seen == nil {
		s.Seen = make(map[string]*SeenSet)
	}
	if s.Errors == nil {
		s.Errors = make(map[string]*ErrorState)
	}
	for id, seen := range s.Seen {
		if seen == nil {
			delete(s.Seen, id)
			continue
		}
		seen.compact()
	}
	for id, e := range s.Errors {
		if e == nil {
			delete(s.Errors, id)
		}
	}
}

func (s *State) Clone() *State {
	c := NewState()
	for id, seen := range s.Seen {
		if seen == nil {
			continue
		}
		c.Seen[id] = seen.Clone()
	}
	for id, e := range s.Errors {
		if e == nil {
			continue
		}
		errorState := *e
		c.Errors[id] = &errorState
	}
	return c
}
