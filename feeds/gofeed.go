package feeds

import (
	"strings"

	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"
)

// GofeedParser 범용 피드 파서(gofeed)를 이용하는 Parser
type GofeedParser struct {
	parser *gofeed.Parser
}

func NewGofeedParser() *GofeedParser {
	return &GofeedParser{
		parser: gofeed.NewParser(),
	}
}

func (p *GofeedParser) Parse(doc []byte) []*Item {
	feed, err := p.parser.ParseString(string(doc))
	if err != nil {
		log.Warnf("피드 문서를 해석할 수 없습니다. (error:%s)", err)
		return []*Item{}
	}

	items := make([]*Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		id := extensionValue(fi, "yt", "videoId")
		// Atom 문서의 <id>는 동영상 ID가 아니므로 RSS 문서인 경우에만 guid를 사용한다.
		if id == "" && feed.FeedType == "rss" {
			id = strings.TrimSpace(fi.GUID)
		}
		if id == "" {
			continue
		}

		item := &Item{
			ID:        id,
			Title:     strings.TrimSpace(fi.Title),
			Link:      strings.TrimSpace(fi.Link),
			Published: strings.TrimSpace(fi.Published),
			Thumbnail: mediaThumbnail(fi),
		}
		if item.Link == "" {
			item.Link = videoURL(id)
		}
		if item.Thumbnail == "" && fi.Image != nil {
			item.Thumbnail = strings.TrimSpace(fi.Image.URL)
		}
		if item.Thumbnail == "" {
			item.Thumbnail = thumbnailURL(id)
		}

		items = append(items, item)
	}

	return items
}

func extensionValue(fi *gofeed.Item, namespace, name string) string {
	if es, exists := fi.Extensions[namespace][name]; exists == true && len(es) > 0 {
		return strings.TrimSpace(es[0].Value)
	}
	return ""
}

func mediaThumbnail(fi *gofeed.Item) string {
	media, exists := fi.Extensions["media"]
	if exists == false {
		return ""
	}

	if ts := media["thumbnail"]; len(ts) > 0 {
		return ts[0].Attrs["url"]
	}
	for _, g := range media["group"] {
		if ts := g.Children["thumbnail"]; len(ts) > 0 {
			return ts[0].Attrs["url"]
		}
	}

	return ""
}
