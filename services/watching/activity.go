package watching

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Activity struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// activityLog 최근 작업 내역을 최신순으로 최대 max개까지 보관한다.
type activityLog struct {
	mu sync.RWMutex

	max     int
	entries []*Activity
}

func newActivityLog(max int) *activityLog {
	if max <= 0 {
		max = 1
	}

	return &activityLog{
		max:     max,
		entries: make([]*Activity, 0, max),
	}
}

func (l *activityLog) add(now time.Time, format string, args ...interface{}) {
	m := fmt.Sprintf(format, args...)

	log.Info(m)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]*Activity{{Time: now, Message: m}}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

func (l *activityLog) list() []*Activity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]*Activity, 0, len(l.entries))
	for _, e := range l.entries {
		a := *e
		entries = append(entries, &a)
	}
	return entries
}
