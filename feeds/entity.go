package feeds

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// 엔티티 이름의 최대 길이(&#x10FFFF; 기준)
const maxEntityLength = 9

var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
}

// DecodeEntities 기본 HTML 엔티티와 숫자 문자 참조(&#NNN;, &#xHH;)를 디코딩한다.
// 한번만 디코딩하므로 "&amp;lt;"는 "&lt;"가 된다.
func DecodeEntities(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}

		semi := strings.IndexByte(s[i+1:], ';')
		if semi > 0 && semi <= maxEntityLength {
			if r, ok := decodeEntity(s[i+1 : i+1+semi]); ok == true {
				b.WriteString(r)
				i += semi + 2
				continue
			}
		}

		b.WriteByte('&')
		i++
	}

	return b.String()
}

func decodeEntity(name string) (string, bool) {
	if r, exists := namedEntities[name]; exists == true {
		return r, true
	}

	if len(name) < 2 || name[0] != '#' {
		return "", false
	}

	var n uint64
	var err error
	if name[1] == 'x' || name[1] == 'X' {
		n, err = strconv.ParseUint(name[2:], 16, 32)
	} else {
		n, err = strconv.ParseUint(name[1:], 10, 32)
	}
	if err != nil || n == 0 || utf8.ValidRune(rune(n)) == false {
		return "", false
	}

	return string(rune(n)), true
}
