package feeds

import (
	"fmt"
	"html"
	"time"

	_feeds_ "github.com/gorilla/feeds"
)

// ToRss 새로 확인된 동영상 목록을 RSS 2.0 문서로 변환한다.
func ToRss(title, link, description string, items []*Item, now time.Time) (string, error) {
	feed := &_feeds_.Feed{
		Title:       title,
		Link:        &_feeds_.Link{Href: link},
		Description: description,
		Created:     now,
		Items:       make([]*_feeds_.Item, 0, len(items)),
	}

	for _, i := range items {
		created := i.PublishedAt()
		if created.IsZero() == true {
			created = now
		}

		feed.Items = append(feed.Items, &_feeds_.Item{
			Id:          i.ID,
			Title:       i.Title,
			Link:        &_feeds_.Link{Href: i.Link},
			Author:      &_feeds_.Author{Name: i.SourceName},
			Description: fmt.Sprintf(`<a href="%s"><img src="%s" alt="%s"></a>`, html.EscapeString(i.Link), html.EscapeString(i.Thumbnail), html.EscapeString(i.Title)),
			Created:     created,
			Enclosure:   &_feeds_.Enclosure{Url: i.Thumbnail, Type: "image/jpeg", Length: "0"},
		})
	}

	return feed.ToRss()
}
