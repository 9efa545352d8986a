package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", DecodeEntities(""))
	assert.Equal("plain text", DecodeEntities("plain text"))
	assert.Equal(`& < > " ' '`, DecodeEntities("&amp; &lt; &gt; &quot; &#39; &apos;"))
	assert.Equal("A가", DecodeEntities("&#65;&#xAC00;"))
	assert.Equal("A", DecodeEntities("&#X41;"))

	// 한번만 디코딩되어야 한다.
	assert.Equal("&amp;", DecodeEntities("&amp;amp;"))
	assert.Equal("&lt;b&gt;", DecodeEntities("&amp;lt;b&amp;gt;"))
	assert.Equal("Tom & Jerry's", DecodeEntities("Tom &amp; Jerry&#39;s"))

	// 알 수 없거나 잘못된 참조는 그대로 둔다.
	assert.Equal("&nbsp; &#; &#x; &#0; &#xZZ; & ;", DecodeEntities("&nbsp; &#; &#x; &#0; &#xZZ; & ;"))
	assert.Equal("&verylongentityname;", DecodeEntities("&verylongentityname;"))
	assert.Equal("a & b", DecodeEntities("a & b"))
	assert.Equal("&", DecodeEntities("&"))
	assert.Equal("&#1114112;", DecodeEntities("&#1114112;"))
}
