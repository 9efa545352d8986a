package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/darkkaiser/youtube-feed-notifier/g"
	"github.com/darkkaiser/youtube-feed-notifier/notifyapi"
	"github.com/darkkaiser/youtube-feed-notifier/services/watching"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Watcher 웹 서비스에서 조회하거나 실행하는 채널 모니터링 서비스의 기능
type Watcher interface {
	Status() *watching.Status
	Activity() []*watching.Activity
	Trigger() error
	RecentItems() []*feeds.Item
}

type CheckResult struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// Handler
type Handler struct {
	watcher Watcher
}

func NewHandler(watcher Watcher) *Handler {
	return &Handler{
		watcher: watcher,
	}
}

// GetStatusHandler godoc
// @Summary 서비스 상태 조회
// @Description 모니터링 중인 채널 목록, 폴링 작업 시각, 누적 건수, 채널별 오류 상태를 반환합니다.
// @Tags watching
// @Produce json
// @Success 200 {object} watching.Status
// @Router /api/v1/status [get]
func (h *Handler) GetStatusHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.watcher.Status())
}

// GetActivityHandler godoc
// @Summary 최근 작업 내역 조회
// @Description 최근 작업 내역을 최신순으로 반환합니다.
// @Tags watching
// @Produce json
// @Success 200 {array} watching.Activity
// @Router /api/v1/activity [get]
func (h *Handler) GetActivityHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.watcher.Activity())
}

// PostCheckHandler godoc
// @Summary 폴링 작업 실행
// @Description 스케쥴과 관계없이 폴링 작업을 시작합니다. 작업이 끝날 때까지 기다리지 않습니다.
// @Tags watching
// @Produce json
// @Success 202 {object} CheckResult
// @Failure 409 {object} CheckResult
// @Failure 503 {object} CheckResult
// @Router /api/v1/check [post]
func (h *Handler) PostCheckHandler(c echo.Context) error {
	if err := h.watcher.Trigger(); err != nil {
		if errors.Is(err, watching.ErrServiceStopped) == true {
			return c.JSON(http.StatusServiceUnavailable, &CheckResult{Started: false, Message: "채널 모니터링 서비스가 실행중이 아닙니다."})
		}

		return c.JSON(http.StatusConflict, &CheckResult{Started: false, Message: "폴링 작업이 이미 실행중입니다."})
	}

	return c.JSON(http.StatusAccepted, &CheckResult{Started: true, Message: "폴링 작업을 시작하였습니다."})
}

// GetFeedHandler godoc
// @Summary 새 동영상 RSS 피드
// @Description 최근에 확인된 새 동영상 목록을 RSS 2.0 문서로 반환합니다.
// @Tags feed
// @Produce xml
// @Success 200 {string} string
// @Router /feed.xml [get]
func (h *Handler) GetFeedHandler(c echo.Context) error {
	link := fmt.Sprintf("%s://%s", c.Scheme(), c.Request().Host)

	rss, err := feeds.ToRss(g.AppName, link, "YouTube 채널에 새로 올라온 동영상 목록", h.watcher.RecentItems(), time.Now())
	if err != nil {
		m := "새 동영상 목록을 RSS 피드로 변환하는 중에 오류가 발생하였습니다."

		log.Errorf("%s (error:%s)", m, err)

		notifyapi.Send(fmt.Sprintf("%s\r\n\r\n%s", m, err), true)

		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.Blob(http.StatusOK, "application/rss+xml; charset=UTF-8", []byte(rss))
}
