package watching

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/darkkaiser/youtube-feed-notifier/model"
	"github.com/darkkaiser/youtube-feed-notifier/notifyapi"
	"github.com/darkkaiser/youtube-feed-notifier/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	// RSS 피드로 제공하는 최근 새 동영상의 최대 개수
	maxRecentItems = 50
)

type Fetcher interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

type Notifier interface {
	Notify(ctx context.Context, recipient, subject string, item *feeds.Item) error
}

// SourceLoader 매 폴링 주기마다 모니터링 할 채널 목록을 읽어들인다.
type SourceLoader func() ([]*model.Source, error)

type Config struct {
	Recipient       string
	CourtesyDelay   time.Duration
	MaxSeenItems    int
	MaxActivityLogs int
}

// CycleRecord
type SourceOutcome struct {
	SourceID     string `json:"source_id"`
	SourceName   string `json:"source_name"`
	Success      bool   `json:"success"`
	Baselined    bool   `json:"baselined"`
	NewItemCount int    `json:"new_item_count"`
	SentCount    int    `json:"sent_count"`
	Error        string `json:"error,omitempty"`
}

type CycleRecord struct {
	ID           string           `json:"id"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
	Outcomes     []*SourceOutcome `json:"outcomes"`
	NewItemCount int              `json:"new_item_count"`
	SentCount    int              `json:"sent_count"`
}

func (r *CycleRecord) Clone() *CycleRecord {
	c := *r
	c.Outcomes = make([]*SourceOutcome, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		outcome := *o
		c.Outcomes = append(c.Outcomes, &outcome)
	}
	return &c
}

//
// Orchestrator
//

// Orchestrator 모든 채널을 설정된 순서대로 하나씩 확인하고, 새 동영상을 알린다.
// 폴링 작업은 동시에 하나만 실행되며, 실행중에 들어온 요청은 무시된다.
type Orchestrator struct {
	config *Config

	loadSources SourceLoader
	fetcher     Fetcher
	parser      feeds.Parser
	notifier    Notifier
	store       model.Store

	tracker *Tracker

	guard *semaphore.Weighted

	activity *activityLog

	mu                sync.RWMutex
	state             *model.State
	sources           []*model.Source
	running           bool
	lastCycle         *CycleRecord
	cyclesRun         int
	notificationsSent int
	newItemsFound     int
	recentItems       []*feeds.Item

	now func() time.Time
}

func NewOrchestrator(config *Config, loadSources SourceLoader, fetcher Fetcher, parser feeds.Parser, notifier Notifier, store model.Store) *Orchestrator {
	return &Orchestrator{
		config: config,

		loadSources: loadSources,
		fetcher:     fetcher,
		parser:      parser,
		notifier:    notifier,
		store:       store,

		tracker: NewTracker(config.MaxSeenItems),

		guard: semaphore.NewWeighted(1),

		activity: newActivityLog(config.MaxActivityLogs),

		sources:     make([]*model.Source, 0),
		recentItems: make([]*feeds.Item, 0),

		now: time.Now,
	}
}

// RunCycle 폴링 작업을 실행하고 완료될 때까지 기다린다.
// 이미 폴링 작업이 실행중이라면 아무것도 하지 않고 false를 반환한다.
func (o *Orchestrator) RunCycle(ctx context.Context) (*CycleRecord, bool) {
	if o.acquire() == false {
		return nil, false
	}

	return o.runCycle(ctx), true
}

// Go 폴링 작업을 백그라운드로 시작하고 바로 반환한다.
// 작업이 시작되었다면 작업이 끝난 후에 done을 호출한다.
func (o *Orchestrator) Go(ctx context.Context, done func()) bool {
	if o.acquire() == false {
		return false
	}

	go func() {
		if done != nil {
			defer done()
		}

		o.runCycle(ctx)
	}()

	return true
}

func (o *Orchestrator) acquire() bool {
	if o.guard.TryAcquire(1) == false {
		log.Info("폴링 작업이 이미 실행중이므로 요청을 무시합니다.")
		return false
	}

	o.setRunning()

	return true
}

func (o *Orchestrator) setRunning() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.running = true
}

// finishCycle 폴링 작업이 끝나면 누적 건수를 갱신한다.
// 비정상 종료된 작업의 recover 경로에서도 호출되므로 잠금은 이 함수 안에서만 잡는다.
func (o *Orchestrator) finishCycle(record *CycleRecord) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.running = false
	o.lastCycle = record.Clone()
	o.cyclesRun++
	o.newItemsFound += record.NewItemCount
	o.notificationsSent += record.SentCount
}

func (o *Orchestrator) runCycle(ctx context.Context) (record *CycleRecord) {
	startedAt := o.now()

	record = &CycleRecord{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Outcomes:  make([]*SourceOutcome, 0),
	}

	defer func() {
		defer o.guard.Release(1)

		if r := recover(); r != nil {
			m := "폴링 작업 중에 예상하지 못한 오류가 발생하였습니다."

			log.Errorf("%s (panic:%v)", m, r)

			notifyapi.Send(fmt.Sprintf("%s\r\n\r\n%v", m, r), true)

			o.activity.add(o.now(), "%s (%v)", m, r)
		}

		record.FinishedAt = o.now()

		o.finishCycle(record)
	}()

	o.activity.add(startedAt, "폴링 작업을 시작합니다. (ID:%s)", record.ID)

	sources, err := o.loadSources()
	if err != nil {
		o.activity.add(o.now(), "채널 목록을 읽어들이지 못하여 빈 목록으로 진행합니다. (error:%s)", err)
		sources = make([]*model.Source, 0)
	}

	o.setSources(sources)

	o.loadState()

	for i, source := range sources {
		if ctx.Err() != nil {
			o.activity.add(o.now(), "서비스가 중지되어 폴링 작업을 중단합니다.")
			break
		}

		// 피드 서버에 부담을 주지 않도록 이전 채널의 확인이 끝난 후에 잠시 쉰다.
		if i > 0 {
			if err := courtesyPause(ctx, o.config.CourtesyDelay); err != nil {
				o.activity.add(o.now(), "서비스가 중지되어 폴링 작업을 중단합니다.")
				break
			}
		}

		outcome := o.processSource(ctx, source)
		if outcome == nil {
			continue
		}

		record.Outcomes = append(record.Outcomes, outcome)
		record.NewItemCount += outcome.NewItemCount
		record.SentCount += outcome.SentCount
	}

	o.activity.add(o.now(), "폴링 작업이 완료되었습니다. (소요시간:%s, 새 동영상:%s개, 알림:%s건)", o.now().Sub(startedAt).Round(time.Millisecond), utils.FormatCommas(record.NewItemCount), utils.FormatCommas(record.SentCount))

	return record
}

// courtesyPause 호출된 시점부터 delay만큼 기다린다. 기다리는 중에 ctx가 취소되면 오류를 반환한다.
func courtesyPause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	// 토큰을 바로 소비하여 다음 토큰이 delay 후에 생기도록 한다.
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow()

	return limiter.Wait(ctx)
}

func (o *Orchestrator) setSources(sources []*model.Source) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.sources = sources
}

// loadState 저장소의 상태 정보는 처음 한번만 읽어들이고, 이후에는 메모리의 상태 정보를 기준으로 한다.
func (o *Orchestrator) loadState() {
	if o.stateLoaded() == true {
		return
	}

	state, err := o.store.Load()
	if err != nil {
		log.Errorf("저장소에서 상태 정보를 읽어들이는 중에 오류가 발생하여 빈 상태로 시작합니다. (error:%s)", err)
		state = model.NewState()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = state
}

func (o *Orchestrator) stateLoaded() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.state != nil
}

func (o *Orchestrator) seenSet(sourceID string) *model.SeenSet {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.state.Seen[sourceID]
}

func (o *Orchestrator) recordError(sourceID string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state.Errors[sourceID] = &model.ErrorState{Message: err.Error(), OccurredAt: o.now()}
}

// commitSeen 확인 결과를 반영하고 오류 상태를 지운다.
func (o *Orchestrator) commitSeen(sourceID string, seen *model.SeenSet) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state.Seen[sourceID] = seen
	delete(o.state.Errors, sourceID)
}

func (o *Orchestrator) snapshot() *model.State {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.state.Clone()
}

// processSource 채널 하나를 확인한다. 서비스가 중지되어 확인을 끝내지 못하였다면 nil을 반환한다.
func (o *Orchestrator) processSource(ctx context.Context, source *model.Source) *SourceOutcome {
	outcome := &SourceOutcome{
		SourceID:   source.ID,
		SourceName: source.Name,
	}

	doc, err := o.fetcher.FetchDocument(ctx, source.FeedURL())
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		outcome.Error = err.Error()

		o.activity.add(o.now(), "%s 채널의 피드를 가져오는 중에 오류가 발생하였습니다. (error:%s)", source, err)

		o.recordError(source.ID, err)
		o.save()

		return outcome
	}

	items := o.parser.Parse(doc)
	for _, item := range items {
		item.SourceID = source.ID
		item.SourceName = source.Name
	}

	decision := o.tracker.Observe(o.seenSet(source.ID), items, o.now())

	// 알림을 보내기 전에 확인한 것으로 기록하고 저장소에 반영한다.
	o.commitSeen(source.ID, decision.Seen)
	o.save()

	outcome.Success = true
	outcome.Baselined = decision.Baselined
	outcome.NewItemCount = len(decision.NewItems)

	switch {
	case decision.Baselined == true:
		o.activity.add(o.now(), "%s 채널을 처음 확인하여 현재 동영상 %d개를 알림 없이 기록하였습니다.", source, len(items))

	case len(decision.NewItems) == 0:
		o.activity.add(o.now(), "%s 채널에 새 동영상이 없습니다.", source)

	default:
		subject := fmt.Sprintf("%s 채널에 새 동영상이 올라왔습니다.", source.Name)

		for _, item := range decision.NewItems {
			o.activity.add(o.now(), "%s 채널의 새 동영상을 확인하였습니다. (%s)", source, item)

			o.addRecentItem(item)

			if err := o.notifier.Notify(ctx, o.config.Recipient, subject, item); err != nil {
				log.Warnf("%s 채널의 새 동영상 알림 전송이 실패하였습니다. (%s) (error:%s)", source, item, err)
				continue
			}

			outcome.SentCount++
		}
	}

	return outcome
}

// save 상태 정보 전체를 저장소에 기록한다. 저장이 실패하여도 폴링 작업은 계속된다.
func (o *Orchestrator) save() {
	if err := o.store.Save(o.snapshot()); err != nil {
		log.Errorf("상태 정보를 저장소에 저장하는 중에 오류가 발생하였습니다. (error:%s)", err)
	}
}

func (o *Orchestrator) addRecentItem(item *feeds.Item) {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := *item
	o.recentItems = append([]*feeds.Item{&i}, o.recentItems...)
	if len(o.recentItems) > maxRecentItems {
		o.recentItems = o.recentItems[:maxRecentItems]
	}
}

// RecentItems 최근에 확인된 새 동영상 목록을 최신순으로 반환한다.
func (o *Orchestrator) RecentItems() []*feeds.Item {
	o.mu.RLock()
	defer o.mu.RUnlock()

	items := make([]*feeds.Item, 0, len(o.recentItems))
	for _, item := range o.recentItems {
		i := *item
		items = append(items, &i)
	}
	return items
}
