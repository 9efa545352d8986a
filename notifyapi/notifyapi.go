package notifyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/darkkaiser/youtube-feed-notifier/utils"
	log "github.com/sirupsen/logrus"
)

const (
	sendTimeout = 10 * time.Second

	// 알림 메시지에 포함되는 동영상 제목의 최대 글자 수
	maxTitleLength = 200
)

var (
	ErrNotification = errors.New("알림 메시지 발송이 실패하였습니다")

	errNotInitialized = errors.New("NotifyAPI 설정정보가 유효하지 않습니다")
	errEmptyMessage   = errors.New("알림 메시지가 비어 있습니다")
)

type Config struct {
	Url           string
	APIKey        string
	ApplicationID string

	valid bool
}

func (c *Config) validation() bool {
	c.valid = false

	url := strings.TrimSpace(c.Url)
	if strings.HasPrefix(url, "http://") == false && strings.HasPrefix(url, "https://") == false {
		return false
	}
	if strings.TrimSpace(c.APIKey) == "" || strings.TrimSpace(c.ApplicationID) == "" {
		return false
	}

	c.valid = true

	return true
}

type notifyMessage struct {
	ApplicationID string `json:"application_id"`
	Message       string `json:"message"`
	ErrorOccurred bool   `json:"error_occurred"`
	Recipient     string `json:"recipient,omitempty"`
}

var (
	config   *Config
	configMu sync.RWMutex

	client = &http.Client{Timeout: sendTimeout}
)

func Init(c *Config) {
	configMu.Lock()
	defer configMu.Unlock()

	config = c

	if config.validation() == false {
		log.Warn("NotifyAPI 설정정보가 유효하지 않아 알림 메시지를 발송할 수 없습니다.")
	}
}

// Send 운영자에게 알림 메시지를 보낸다. 발송 결과를 반환하며, 실패하더라도 로그만 남긴다.
func Send(message string, errorOccurred bool) bool {
	if err := SendContext(context.Background(), "", message, errorOccurred); err != nil {
		log.Errorf("NotifyAPI 서비스 호출이 실패하였습니다. (error:%s)", err)
		return false
	}
	return true
}

// noinspection GoUnhandledErrorResult
func SendContext(ctx context.Context, recipient, message string, errorOccurred bool) error {
	configMu.RLock()
	c := config
	configMu.RUnlock()

	if c == nil || c.valid == false {
		return fmt.Errorf("%w: %s", ErrNotification, errNotInitialized)
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: %s", ErrNotification, errEmptyMessage)
	}

	jsonBytes, err := json.Marshal(notifyMessage{
		ApplicationID: c.ApplicationID,
		Message:       message,
		ErrorOccurred: errorOccurred,
		Recipient:     recipient,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotification, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotification, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Cache-Control", "no-cache")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotification, err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP 상태코드 %d", ErrNotification, res.StatusCode)
	}

	return nil
}

//
// ItemNotifier
//

// ItemNotifier 새로 확인된 동영상을 NotifyAPI로 알린다.
type ItemNotifier struct{}

func NewItemNotifier() *ItemNotifier {
	return &ItemNotifier{}
}

func (n *ItemNotifier) Notify(ctx context.Context, recipient, subject string, item *feeds.Item) error {
	return SendContext(ctx, recipient, FormatItemMessage(subject, item), false)
}

func FormatItemMessage(subject string, item *feeds.Item) string {
	var sb strings.Builder

	sb.WriteString(subject)
	sb.WriteString("\r\n\r\n")
	sb.WriteString(utils.Ellipsis(utils.Trim(item.Title), maxTitleLength))
	sb.WriteString("\r\n")
	sb.WriteString(item.Link)

	if publishedAt := item.PublishedAt(); publishedAt.IsZero() == false {
		sb.WriteString("\r\n")
		sb.WriteString(publishedAt.Local().Format("2006-01-02 15:04:05"))
	}

	return sb.String()
}
