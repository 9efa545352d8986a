package feeds

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToRss(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	items := []*Item{
		{ID: "vid2", Title: "두번째 <동영상>", Link: "https://www.youtube.com/watch?v=vid2", Published: "2024-03-02T09:00:00+00:00", Thumbnail: "https://i.ytimg.com/vi/vid2/hqdefault.jpg", SourceID: "UCtest", SourceName: "테스트 채널"},
		{ID: "vid1", Title: "첫번째 동영상", Link: "https://www.youtube.com/watch?v=vid1", Thumbnail: "https://i.ytimg.com/vi/vid1/hqdefault.jpg", SourceID: "UCtest", SourceName: "테스트 채널"},
	}

	rss, err := ToRss("새 동영상", "http://localhost/feed.xml", "설명", items, now)
	assert.NoError(err)
	assert.True(strings.Contains(rss, "<rss"))
	assert.Equal(2, strings.Count(rss, "<item>"))
	assert.True(strings.Contains(rss, "https://www.youtube.com/watch?v=vid2"))
	assert.True(strings.Contains(rss, "Sat, 02 Mar 2024 09:00:00 +0000"))
	assert.True(strings.Contains(rss, "image/jpeg"))

	// 작성시간이 없는 항목은 현재 시간을 사용한다.
	assert.True(strings.Contains(rss, "Mon, 04 Mar 2024 00:00:00 +0000"))
}
