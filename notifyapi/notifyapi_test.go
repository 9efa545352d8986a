package notifyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	"github.com/stretchr/testify/assert"
)

const (
	validUrl           = "http://api.darkkaiser.com/api/notify/message/send"
	validAPIKey        = "ABCDEFG:12345"
	validApplicationID = "youtube-feed-notifier"
)

func TestConfig_Validation(t *testing.T) {
	assert := assert.New(t)

	c := &Config{
		Url:           validUrl,
		APIKey:        validAPIKey,
		ApplicationID: validApplicationID,
	}

	assert.True(c.validation())
	assert.True(c.valid)

	for _, v := range []string{"", "   ", "ftp://", "HTTP://"} {
		c.Url = v
		assert.False(c.validation())
		assert.False(c.valid)
	}

	c.Url = validUrl

	for _, v := range []string{"", "   "} {
		c.APIKey = v
		assert.False(c.validation())
		assert.False(c.valid)
	}

	c.APIKey = validAPIKey

	for _, v := range []string{"", "   "} {
		c.ApplicationID = v
		assert.False(c.validation())
		assert.False(c.valid)
	}
}

func TestInit(t *testing.T) {
	assert := assert.New(t)

	c := &Config{
		Url:           validUrl,
		APIKey:        validAPIKey,
		ApplicationID: validApplicationID,
	}

	Init(c)
	assert.Same(c, config)
	assert.True(config.valid)

	c.Url = "ftp://"

	Init(c)
	assert.Same(c, config)
	assert.False(config.valid)
}

func TestSend(t *testing.T) {
	assert := assert.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		assert.Equal("Bearer "+validAPIKey, r.Header.Get("Authorization"))
		assert.Equal("application/json", r.Header.Get("Content-Type"))
		assert.Equal(fmt.Sprintf(`{"application_id":"%s","message":"메시지","error_occurred":true}`, validApplicationID), string(body))
	}))
	defer ts.Close()

	// 정상적으로 초기화되었을 경우...
	Init(&Config{
		Url:           ts.URL,
		APIKey:        validAPIKey,
		ApplicationID: validApplicationID,
	})

	assert.True(config.valid)
	assert.True(Send("메시지", true))

	// 빈 메시지를 넘겼을 경우...
	assert.False(Send("", true))

	// 유효하지 않은 설정값으로 초기화되었을 경우...
	Init(&Config{
		Url:           "",
		APIKey:        validAPIKey,
		ApplicationID: validApplicationID,
	})

	assert.False(config.valid)
	assert.False(Send("메시지", true))
}

func TestSendContext_Failure(t *testing.T) {
	assert := assert.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	Init(&Config{
		Url:           ts.URL,
		APIKey:        validAPIKey,
		ApplicationID: validApplicationID,
	})

	err := SendContext(context.Background(), "", "메시지", false)
	assert.ErrorIs(err, ErrNotification)
	assert.Contains(err.Error(), "401")

	ts.Close()
	assert.ErrorIs(SendContext(context.Background(), "", "메시지", false), ErrNotification)
}

func TestItemNotifier_Notify(t *testing.T) {
	assert := assert.New(t)

	var received notifyMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(json.NewDecoder(r.Body).Decode(&received))
	}))
	defer ts.Close()

	Init(&Config{
		Url:           ts.URL,
		APIKey:        validAPIKey,
		ApplicationID: validApplicationID,
	})

	item := &feeds.Item{
		ID:         "vid1",
		Title:      "  첫번째    동영상  ",
		Link:       "https://www.youtube.com/watch?v=vid1",
		SourceID:   "UCtest",
		SourceName: "테스트 채널",
	}

	assert.NoError(NewItemNotifier().Notify(context.Background(), "telegram", "[테스트 채널] 새 동영상", item))
	assert.Equal(validApplicationID, received.ApplicationID)
	assert.Equal("telegram", received.Recipient)
	assert.False(received.ErrorOccurred)
	assert.Equal("[테스트 채널] 새 동영상\r\n\r\n첫번째 동영상\r\nhttps://www.youtube.com/watch?v=vid1", received.Message)
}

func TestFormatItemMessage(t *testing.T) {
	assert := assert.New(t)

	item := &feeds.Item{
		Title:     "동영상",
		Link:      "https://www.youtube.com/watch?v=vid1",
		Published: "2024-03-02T09:00:00+00:00",
	}

	publishedAt := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC).Local().Format("2006-01-02 15:04:05")
	assert.Equal("제목\r\n\r\n동영상\r\nhttps://www.youtube.com/watch?v=vid1\r\n"+publishedAt, FormatItemMessage("제목", item))
}
