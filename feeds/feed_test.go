package feeds

// 테스트용 YouTube 채널 피드
const testYoutubeFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
 <link rel="self" href="http://www.youtube.com/feeds/videos.xml?channel_id=UCtest"/>
 <id>yt:channel:UCtest</id>
 <yt:channelId>UCtest</yt:channelId>
 <title>테스트 채널</title>
 <link rel="alternate" href="https://www.youtube.com/channel/UCtest"/>
 <published>2020-01-01T00:00:00+00:00</published>
 <entry>
  <id>yt:video:vid3</id>
  <yt:videoId>vid3</yt:videoId>
  <yt:channelId>UCtest</yt:channelId>
  <title>세번째 동영상 &amp; 더보기</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=vid3"/>
  <author>
   <name>테스트 채널</name>
   <uri>https://www.youtube.com/channel/UCtest</uri>
  </author>
  <published>2024-03-03T09:00:00+00:00</published>
  <updated>2024-03-03T10:00:00+00:00</updated>
  <media:group>
   <media:title>세번째 동영상 &amp; 더보기</media:title>
   <media:content url="https://www.youtube.com/v/vid3?version=3" type="application/x-shockwave-flash" width="640" height="390"/>
   <media:thumbnail url="https://i1.ytimg.com/vi/vid3/hqdefault.jpg" width="480" height="360"/>
   <media:description>설명</media:description>
  </media:group>
 </entry>
 <entry>
  <id>yt:video:vid2</id>
  <yt:videoId>vid2</yt:videoId>
  <title><![CDATA[  It&#39;s the &#x32;nd video  ]]></title>
  <link href="https://example.com/first"/>
  <link rel="alternate" href="https://www.youtube.com/watch?v=vid2&amp;t=1"/>
  <published>2024-03-02T09:00:00+00:00</published>
 </entry>
 <entry>
  <id>yt:video:removed</id>
  <title>삭제된 동영상</title>
  <published>2024-03-01T12:00:00+00:00</published>
 </entry>
 <entry>
  <yt:videoId>vid1</yt:videoId>
  <title>첫번째 동영상</title>
 </entry>
</feed>
`

// 테스트용 RSS 2.0 문서
const testRssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
 <channel>
  <title>RSS</title>
  <item>
   <guid>post-2</guid>
   <title>두번째 글</title>
   <link>https://example.com/post-2</link>
   <pubDate>Sat, 02 Mar 2024 09:00:00 +0000</pubDate>
  </item>
  <item>
   <guid>post-1</guid>
   <title>첫번째 글</title>
  </item>
 </channel>
</rss>
`
