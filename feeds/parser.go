package feeds

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

// 하나의 문서에서 추출할 최대 항목 수
const maxEntryCount = 500

var ErrMalformedDocument = errors.New("피드 문서의 형식이 올바르지 않습니다")

// Validate 문서가 Atom/RSS 피드로 보이는지 최소한의 검사를 한다.
func Validate(doc []byte) error {
	s := string(doc)
	if findOpenTag(s, "feed", 0) < 0 && findOpenTag(s, "rss", 0) < 0 {
		return ErrMalformedDocument
	}
	return nil
}

// ScannerParser 범용 XML 파서 대신 정해진 태그만 찾아 읽는 가벼운 파서
// YouTube 채널 피드(Atom)를 기준으로 하며, RSS 2.0 문서의 <item>도 읽을 수 있다.
type ScannerParser struct{}

func NewScannerParser() *ScannerParser {
	return &ScannerParser{}
}

func (p *ScannerParser) Parse(doc []byte) []*Item {
	s := string(doc)

	entries := elements(s, "entry", maxEntryCount)
	if len(entries) == 0 {
		entries = elements(s, "item", maxEntryCount)
	}

	items := make([]*Item, 0, len(entries))
	for i, e := range entries {
		item := p.parseEntry(e.inner)
		if item == nil {
			log.Debugf("피드 문서의 %d번째 항목에서 동영상 ID를 찾을 수 없어 건너뜁니다.", i+1)
			continue
		}
		items = append(items, item)
	}

	return items
}

func (p *ScannerParser) parseEntry(entry string) *Item {
	id := tagText(entry, "yt:videoId")
	if id == "" {
		id = tagText(entry, "guid")
	}
	// 동영상 ID가 없는 항목(삭제되었거나 비공개로 전환된 동영상 등)은 알림 대상이 아니다.
	if id == "" {
		return nil
	}

	item := &Item{
		ID:        id,
		Title:     tagText(entry, "title"),
		Link:      p.link(entry),
		Published: tagText(entry, "published"),
	}
	if item.Published == "" {
		item.Published = tagText(entry, "pubDate")
	}
	if item.Link == "" {
		item.Link = videoURL(id)
	}

	if e := firstElement(entry, "media:thumbnail"); e != nil {
		item.Thumbnail, _ = attr(e.tag, "url")
	}
	if item.Thumbnail = strings.TrimSpace(item.Thumbnail); item.Thumbnail == "" {
		item.Thumbnail = thumbnailURL(id)
	}

	return item
}

// link rel="alternate" 링크를 우선하고, 없다면 처음 나오는 링크를 사용한다.
func (p *ScannerParser) link(entry string) string {
	var first string
	for _, e := range elements(entry, "link", 0) {
		href, _ := attr(e.tag, "href")
		if href = strings.TrimSpace(href); href == "" && e.selfClosing == false {
			href = text(e.inner)
		}
		if href == "" {
			continue
		}

		if rel, _ := attr(e.tag, "rel"); rel == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}

	return first
}

func tagText(s, name string) string {
	if e := firstElement(s, name); e != nil {
		return text(e.inner)
	}
	return ""
}
