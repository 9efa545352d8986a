package watching

import (
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/model"
)

type SourceStatus struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ChannelURL string            `json:"channel_url"`
	FeedURL    string            `json:"feed_url"`
	Baselined  bool              `json:"baselined"`
	SeenCount  int               `json:"seen_count"`
	SeenIDs    []string          `json:"seen_ids"`
	Error      *model.ErrorState `json:"error,omitempty"`
}

// Status 서비스의 현재 상태. 모든 값은 복사본이므로 자유롭게 사용할 수 있다.
type Status struct {
	Sources           []*SourceStatus              `json:"sources"`
	LastCycleAt       *time.Time                   `json:"last_cycle_at,omitempty"`
	NextCycleAt       *time.Time                   `json:"next_cycle_at,omitempty"`
	Running           bool                         `json:"running"`
	CyclesRun         int                          `json:"cycles_run"`
	NotificationsSent int                          `json:"notifications_sent"`
	NewItemsFound     int                          `json:"new_items_found"`
	Errors            map[string]*model.ErrorState `json:"errors"`
	LastCycle         *CycleRecord                 `json:"last_cycle,omitempty"`
	Activity          []*Activity                  `json:"activity"`
}

func (o *Orchestrator) Status() *Status {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := &Status{
		Sources:           make([]*SourceStatus, 0, len(o.sources)),
		Running:           o.running,
		CyclesRun:         o.cyclesRun,
		NotificationsSent: o.notificationsSent,
		NewItemsFound:     o.newItemsFound,
		Errors:            make(map[string]*model.ErrorState),
		Activity:          o.activity.list(),
	}

	for _, source := range o.sources {
		ss := &SourceStatus{
			ID:         source.ID,
			Name:       source.Name,
			ChannelURL: source.ChannelURL(),
			FeedURL:    source.FeedURL(),
			SeenIDs:    make([]string, 0),
		}

		if o.state != nil {
			if seen, exists := o.state.Seen[source.ID]; exists == true && seen != nil {
				ss.Baselined = true
				ss.SeenCount = seen.Len()
				ss.SeenIDs = seen.IDs()
			}
			if e, exists := o.state.Errors[source.ID]; exists == true && e != nil {
				errorState := *e
				ss.Error = &errorState
			}
		}

		s.Sources = append(s.Sources, ss)
	}

	if o.state != nil {
		for id, e := range o.state.Errors {
			if e == nil {
				continue
			}

			errorState := *e
			s.Errors[id] = &errorState
		}
	}

	if o.lastCycle != nil {
		s.LastCycle = o.lastCycle.Clone()

		lastCycleAt := o.lastCycle.StartedAt
		s.LastCycleAt = &lastCycleAt
	}

	return s
}

// Activity 최근 작업 내역을 최신순으로 반환한다.
func (o *Orchestrator) Activity() []*Activity {
	return o.activity.list()
}
