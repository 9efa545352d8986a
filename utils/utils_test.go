package utils

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCheckErr(t *testing.T) {
	cases := []struct {
		param       error
		expectFatal bool
	}{
		{
			param:       nil,
			expectFatal: false,
		}, {
			param:       errors.New("error"),
			expectFatal: true,
		},
	}

	defer func() { log.StandardLogger().ExitFunc = nil }()

	var occurredFatal bool
	log.StandardLogger().ExitFunc = func(int) { occurredFatal = true }

	assert := assert.New(t)
	for _, c := range cases {
		occurredFatal = false
		CheckErr(c.param)
		assert.Equal(c.expectFatal, occurredFatal)
	}
}

func TestContains(t *testing.T) {
	assert := assert.New(t)

	lst := []string{"A1", "B1", "C1"}
	assert.False(Contains(lst, ""))
	assert.True(Contains(lst, "A1"))
	assert.False(Contains(lst, "a1"))
	assert.False(Contains(lst, "A2"))
	assert.False(Contains(nil, "A1"))
}

func TestTrim(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Trim("   "))
	assert.Equal("동영상", Trim("   동영상   "))
	assert.Equal("다수 공백 여러개", Trim("   다수    공백   여러개   "))

	// 다수의 라인이 포함되어 있는 문자열 체크
	assert.Equal("라인 1 라인2 라인3", Trim(`

		라인    1
		라인2


		라인3

		`))
}

func TestEllipsis(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Ellipsis("", 5))
	assert.Equal("abcde", Ellipsis("abcde", 5))
	assert.Equal("abc...", Ellipsis("abcde", 3))
	assert.Equal("가나...", Ellipsis("가나다라", 2))
	assert.Equal("가나다라", Ellipsis("가나다라", 0))
}

func TestFormatCommas(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0", FormatCommas(0))
	assert.Equal("100", FormatCommas(100))
	assert.Equal("1,000", FormatCommas(1000))
	assert.Equal("1,234,567", FormatCommas(1234567))
	assert.Equal("-1,234,567", FormatCommas(-1234567))
}
