package model

import (
	"fmt"
	"net/url"
)

const (
	feedUrlFormat      = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"
	channelUrlFormat   = "https://www.youtube.com/channel/%s"
	VideoUrlFormat     = "https://www.youtube.com/watch?v=%s"
	ThumbnailUrlFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// Source 모니터링 대상 채널
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Source) FeedURL() string {
	return fmt.Sprintf(feedUrlFormat, url.QueryEscape(s.ID))
}

func (s *Source) ChannelURL() string {
	return fmt.Sprintf(channelUrlFormat, url.PathEscape(s.ID))
}

func (s *Source) String() string {
	return fmt.Sprintf("%s(ID:%s)", s.Name, s.ID)
}
