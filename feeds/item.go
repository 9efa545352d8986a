package feeds

import (
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/model"
)

// Item 피드에서 추출한 동영상 정보
// 매 폴링 주기마다 새로 만들어지며 저장소에 직접 저장되지 않는다.
type Item struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Published  string `json:"published"`
	Thumbnail  string `json:"thumbnail"`
	SourceID   string `json:"source_id"`
	SourceName string `json:"source_name"`
}

func (i *Item) String() string {
	return fmt.Sprintf("[%s, %s, %s, %s]", i.ID, i.Title, i.Link, i.Published)
}

// PublishedAt 작성시간을 해석할 수 없다면 zero time을 반환한다.
func (i *Item) PublishedAt() time.Time {
	for _, layout := range []string{time.RFC3339, time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, strings.TrimSpace(i.Published)); err == nil {
			return t
		}
	}
	return time.Time{}
}

func videoURL(id string) string {
	return fmt.Sprintf(model.VideoUrlFormat, id)
}

func thumbnailURL(id string) string {
	return fmt.Sprintf(model.ThumbnailUrlFormat, id)
}

// Parser 피드 문서에서 Item 목록을 추출한다.
// 잘못된 문서라도 오류를 반환하지 않으며, 해석할 수 없는 항목은 건너뛴다.
type Parser interface {
	Parse(doc []byte) []*Item
}

const (
	ParserScanner = "scanner"
	ParserGofeed  = "gofeed"
)

func NewParser(name string) Parser {
	if name == ParserGofeed {
		return NewGofeedParser()
	}
	return NewScannerParser()
}
