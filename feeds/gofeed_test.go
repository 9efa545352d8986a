package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGofeedParser_Parse(t *testing.T) {
	assert := assert.New(t)

	items := NewGofeedParser().Parse([]byte(testYoutubeFeed))

	// 두 파서의 추출 결과가 같아야 한다.
	assert.Equal(3, len(items))
	assert.Equal("vid3", items[0].ID)
	assert.Equal("세번째 동영상 & 더보기", items[0].Title)
	assert.Equal("https://www.youtube.com/watch?v=vid3", items[0].Link)
	assert.Equal("https://i1.ytimg.com/vi/vid3/hqdefault.jpg", items[0].Thumbnail)
	assert.Equal("vid2", items[1].ID)
	assert.Equal("vid1", items[2].ID)
	assert.Equal("https://i.ytimg.com/vi/vid1/hqdefault.jpg", items[2].Thumbnail)

	items = NewGofeedParser().Parse([]byte(testRssFeed))
	assert.Equal(2, len(items))
	assert.Equal("post-2", items[0].ID)

	assert.Empty(NewGofeedParser().Parse([]byte("not a feed")))
}
