package router

import (
	"net/http"

	_ "github.com/darkkaiser/youtube-feed-notifier/docs"
	"github.com/darkkaiser/youtube-feed-notifier/services/ws/handler"
	_middleware_ "github.com/darkkaiser/youtube-feed-notifier/services/ws/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title youtube-feed-notifier API
// @version 1.0.0
// @description YouTube 채널 피드 모니터링 서비스의 상태 조회 및 폴링 작업 실행 API
// @BasePath /
func New(watcher handler.Watcher) *echo.Echo {
	e := echo.New()

	e.Debug = false
	e.HideBanner = true
	e.HidePort = true

	// echo에서 출력되는 로그를 Logrus Logger로 출력되도록 한다.
	// echo Logger의 인터페이스를 래핑한 객체를 이용하여 Logrus Logger로 보낸다.
	e.Logger = _middleware_.Logger{Logger: log.StandardLogger()}
	e.Use(_middleware_.LogrusLogger(log.StandardLogger()))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{ // CORS Middleware
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(middleware.Recover()) // Recover from panics anywhere in the chain
	e.Use(middleware.Secure())

	h := handler.NewHandler(watcher)
	{
		api := e.Group("/api/v1")
		api.GET("/status", h.GetStatusHandler)
		api.GET("/activity", h.GetActivityHandler)
		api.POST("/check", h.PostCheckHandler)

		e.GET("/feed.xml", h.GetFeedHandler)

		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
