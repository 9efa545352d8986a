package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/darkkaiser/youtube-feed-notifier/fetcher"
	"github.com/darkkaiser/youtube-feed-notifier/g"
	_log_ "github.com/darkkaiser/youtube-feed-notifier/log"
	"github.com/darkkaiser/youtube-feed-notifier/model"
	"github.com/darkkaiser/youtube-feed-notifier/notifyapi"
	"github.com/darkkaiser/youtube-feed-notifier/services"
	"github.com/darkkaiser/youtube-feed-notifier/services/watching"
	"github.com/darkkaiser/youtube-feed-notifier/services/ws"
	log "github.com/sirupsen/logrus"
)

const (
	banner = `
 __   __         _____      _          _____             _
 \ \ / /__  _   |_   _|   _| |__   ___|  ___|__  ___  __| |
  \ V / _ \| | | || || | | | '_ \ / _ \ |_ / _ \/ _ \/ _' |
   | | (_) | |_| || || |_| | |_) |  __/  _|  __/  __/ (_| |
   |_|\___/ \__,_||_| \__,_|_.__/ \___|_|  \___|\___|\__,_| Notifier v%s
                                                   developed by DarkKaiser
---------------------------------------------------------------------------
`
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU()) // 모든 CPU 사용

	// 환경설정 정보를 읽어들인다.
	config := g.InitAppConfig()

	// 로그를 초기화하고, 일정 시간이 지난 로그 파일을 모두 삭제한다.
	if logFile := _log_.Init(config.Debug, g.AppName, 30.); logFile != nil {
		defer logFile.Close()
	}

	// NotifyAPI를 초기화한다.
	notifyapi.Init(&notifyapi.Config{
		Url:           config.NotifyAPI.Url,
		APIKey:        config.NotifyAPI.APIKey,
		ApplicationID: config.NotifyAPI.ApplicationID,
	})

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, g.AppVersion)

	// 상태 정보 저장소를 초기화한다.
	store, err := model.NewStore(string(config.Store.Driver), config.Store.Path)
	if err != nil {
		m := fmt.Sprintf("상태 정보 저장소(%s)를 여는 중에 치명적인 오류가 발생하였습니다.", config.Store.Driver)

		notifyapi.Send(fmt.Sprintf("%s\r\n\r\n%s", m, err), true)

		log.Panicf("%s (error:%s)", m, err)
	}
	defer func(store model.Store) {
		if err := store.Close(); err != nil {
			m := "상태 정보 저장소를 닫는 중에 오류가 발생하였습니다."

			log.Errorf("%s (error:%s)", m, err)

			notifyapi.Send(fmt.Sprintf("%s\r\n\r\n%s", m, err), true)
		}
	}(store)

	// 피드를 가져오는 Fetcher를 초기화한다.
	routes := make([]*fetcher.Route, 0, len(config.Fetch.Routes))
	for _, r := range config.Fetch.Routes {
		routes = append(routes, &fetcher.Route{Name: r.Name, Proxy: r.Proxy, UrlTemplate: r.UrlTemplate})
	}

	f, err := fetcher.New(&fetcher.Config{
		Timeout:       config.Fetch.Timeout,
		MaxAttempts:   config.Fetch.MaxAttempts,
		Backoff:       config.Fetch.Backoff,
		MaxRedirects:  config.Fetch.MaxRedirects,
		MinBodyLength: config.Fetch.MinBodyLength,
		Routes:        routes,
		Validate:      feeds.Validate,
		UserAgent:     fmt.Sprintf("%s/%s", g.AppName, g.AppVersion),
	})
	if err != nil {
		m := "피드 Fetcher를 초기화하는 중에 치명적인 오류가 발생하였습니다."

		notifyapi.Send(fmt.Sprintf("%s\r\n\r\n%s", m, err), true)

		log.Panicf("%s (error:%s)", m, err)
	}

	// 서비스를 생성하고 초기화한다.
	orchestrator := watching.NewOrchestrator(&watching.Config{
		Recipient:       config.Watch.Recipient,
		CourtesyDelay:   config.Watch.CourtesyDelay,
		MaxSeenItems:    config.Watch.MaxSeenItems,
		MaxActivityLogs: config.Watch.MaxActivityLogs,
	}, func() ([]*model.Source, error) {
		return g.LoadSources(g.AppConfigFileName)
	}, f, feeds.NewParser(config.Watch.Parser), notifyapi.NewItemNotifier(), store)

	watchingService := watching.NewService(config.Watch.TimeSpec, orchestrator)
	webService := ws.NewService(config, watchingService)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWaiter := &sync.WaitGroup{}

	// 서비스를 시작한다.
	for _, s := range []services.Service{watchingService, webService} {
		serviceStopWaiter.Add(1)
		s.Run(serviceStopCtx, serviceStopWaiter)
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	<-termC // Blocks here until interrupted

	// Handle shutdown
	log.Info("Shutdown signal received")
	cancel()                 // Signal cancellation to context.Context
	serviceStopWaiter.Wait() // Block here until are workers are done
}
