package watching

import (
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/darkkaiser/youtube-feed-notifier/model"
)

// Decision 채널 하나의 피드를 확인한 결과
type Decision struct {
	// 채널을 처음 확인하여 현재 동영상 목록을 알림 없이 기록하였는지의 여부
	Baselined bool

	// 새로 확인된 동영상 목록(오래된 순)
	NewItems []*feeds.Item

	// 확인 결과가 반영된 SeenSet
	Seen *model.SeenSet
}

//
// Tracker
//

// Tracker 채널별로 이미 확인한 동영상을 기록하고, 새로 올라온 동영상을 가려낸다.
type Tracker struct {
	maxSeenItems int
}

func NewTracker(maxSeenItems int) *Tracker {
	return &Tracker{
		maxSeenItems: maxSeenItems,
	}
}

// Observe 피드에서 읽어들인 동영상 목록(최신순)을 기존 SeenSet과 비교한다.
// seen이 nil이면 처음 확인하는 채널이므로 모든 동영상을 알림 없이 기록만 한다.
// 새 동영상은 알림 결과와 관계없이 반환 전에 SeenSet에 기록되므로 두 번 알림되지 않는다.
// 인자로 받은 seen은 변경하지 않는다.
func (t *Tracker) Observe(seen *model.SeenSet, items []*feeds.Item, now time.Time) *Decision {
	d := &Decision{
		NewItems: make([]*feeds.Item, 0),
	}

	if seen == nil {
		d.Baselined = true
		d.Seen = model.NewSeenSet()
	} else {
		d.Seen = seen.Clone()
	}

	// 피드는 최신순이므로 거꾸로 순회하여 오래된 동영상부터 기록한다.
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if d.Seen.Add(item.ID, now) == true && d.Baselined == false {
			d.NewItems = append(d.NewItems, item)
		}
	}

	// 현재 피드에 노출된 동영상은 제거되지 않도록 최대 개수를 피드의 동영상 수 이상으로 유지한다.
	max := t.maxSeenItems
	if max < len(items) {
		max = len(items)
	}
	d.Seen.Evict(max)

	return d
}
