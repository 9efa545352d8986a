package watching

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/darkkaiser/youtube-feed-notifier/notifyapi"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

var (
	ErrServiceStopped = errors.New("채널 모니터링 서비스가 실행중이 아닙니다")
	ErrCycleRunning   = errors.New("폴링 작업이 이미 실행중입니다")
)

// WatchingService
type WatchingService struct {
	timeSpec string

	cron        *cron.Cron
	cronEntryID cron.EntryID

	orchestrator *Orchestrator

	// 수동으로 시작된 폴링 작업에서 사용하는 컨텍스트
	cycleCtx    context.Context
	cycleWaiter sync.WaitGroup

	running   bool
	runningMu sync.Mutex
}

func NewService(timeSpec string, orchestrator *Orchestrator) *WatchingService {
	cronLogger := cron.VerbosePrintfLogger(log.StandardLogger())

	return &WatchingService{
		timeSpec: timeSpec,

		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),

		orchestrator: orchestrator,

		running:   false,
		runningMu: sync.Mutex{},
	}
}

func (s *WatchingService) Run(serviceStopCtx context.Context, serviceStopWaiter *sync.WaitGroup) {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	log.Debug("채널 모니터링 서비스 시작중...")

	if s.running == true {
		defer serviceStopWaiter.Done()

		log.Warn("채널 모니터링 서비스가 이미 시작됨!!!")

		return
	}

	s.cycleCtx = serviceStopCtx

	// 폴링 스케쥴러를 시작한다.
	entryID, err := s.cron.AddFunc(s.timeSpec, func() {
		s.orchestrator.RunCycle(serviceStopCtx)
	})
	if err != nil {
		m := fmt.Sprintf("폴링 작업의 스케쥴러 등록이 실패하였습니다. (time_spec:%s) (error:%s)", s.timeSpec, err)

		notifyapi.Send(m, true)

		log.Panic(m)
	}
	s.cronEntryID = entryID

	s.cron.Start()

	go s.run0(serviceStopCtx, serviceStopWaiter)

	s.running = true

	// 서비스가 시작되면 다음 스케쥴을 기다리지 않고 바로 한번 확인한다.
	s.trigger()

	log.Debug("채널 모니터링 서비스 시작됨")
}

func (s *WatchingService) run0(serviceStopCtx context.Context, serviceStopWaiter *sync.WaitGroup) {
	defer serviceStopWaiter.Done()

	<-serviceStopCtx.Done()

	log.Debug("채널 모니터링 서비스 중지중...")

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	// 폴링 스케쥴러를 중지하고, 실행중인 폴링 작업이 끝날 때까지 기다린다.
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cycleWaiter.Wait()

	log.Debug("채널 모니터링 서비스 중지됨")
}

// Trigger 스케쥴과 관계없이 폴링 작업을 바로 시작한다. 작업이 끝날 때까지 기다리지 않는다.
// 서비스가 실행중이 아니라면 ErrServiceStopped를, 이미 폴링 작업이 실행중이라면 ErrCycleRunning을 반환한다.
func (s *WatchingService) Trigger() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running == false {
		return ErrServiceStopped
	}

	if s.trigger() == false {
		return ErrCycleRunning
	}

	return nil
}

func (s *WatchingService) trigger() bool {
	s.cycleWaiter.Add(1)
	if s.orchestrator.Go(s.cycleCtx, s.cycleWaiter.Done) == false {
		s.cycleWaiter.Done()
		return false
	}

	return true
}

func (s *WatchingService) Status() *Status {
	status := s.orchestrator.Status()

	s.runningMu.Lock()
	running := s.running
	s.runningMu.Unlock()

	if running == true {
		if next := s.cron.Entry(s.cronEntryID).Next; next.IsZero() == false {
			status.NextCycleAt = &next
		}
	}

	return status
}

func (s *WatchingService) Activity() []*Activity {
	return s.orchestrator.Activity()
}

func (s *WatchingService) RecentItems() []*feeds.Item {
	return s.orchestrator.RecentItems()
}
