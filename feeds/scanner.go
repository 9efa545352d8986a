package feeds

import (
	"strings"
)

// element 태그 단위로 잘라낸 문서 조각
type element struct {
	// 여는 태그 전체(예: <link rel="alternate" href="..."/>)
	tag string
	// 여는 태그와 닫는 태그 사이의 내용
	inner string

	selfClosing bool
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// findOpenTag from 이후에서 name 태그가 시작되는 위치를 반환한다.
// <entryX 처럼 이름이 더 긴 태그는 건너뛴다.
func findOpenTag(s, name string, from int) int {
	prefix := "<" + name
	for from < len(s) {
		i := strings.Index(s[from:], prefix)
		if i < 0 {
			return -1
		}
		i += from

		j := i + len(prefix)
		if j >= len(s) {
			return -1
		}
		if c := s[j]; c == '>' || c == '/' || isSpace(c) {
			return i
		}

		from = j
	}

	return -1
}

// findTagEnd start에서 시작하는 태그를 닫는 '>'의 위치를 반환한다. 따옴표 안의 '>'는 무시한다.
func findTagEnd(s string, start int) int {
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		}
	}
	return -1
}

// elements s에서 name 태그를 순서대로 잘라낸다.
// 중첩된 같은 이름의 태그는 고려하지 않으며, 닫히지 않은 태그를 만나면 그 이후는 버린다.
func elements(s, name string, limit int) []*element {
	var result []*element

	closeTag := "</" + name + ">"
	for from := 0; from < len(s); {
		if limit > 0 && len(result) >= limit {
			break
		}

		start := findOpenTag(s, name, from)
		if start < 0 {
			break
		}
		end := findTagEnd(s, start)
		if end < 0 {
			break
		}

		e := &element{tag: s[start : end+1]}
		if s[end-1] == '/' {
			e.selfClosing = true
			result = append(result, e)
			from = end + 1
			continue
		}

		closeAt := strings.Index(s[end+1:], closeTag)
		if closeAt < 0 {
			break
		}
		e.inner = s[end+1 : end+1+closeAt]
		result = append(result, e)

		from = end + 1 + closeAt + len(closeTag)
	}

	return result
}

func firstElement(s, name string) *element {
	if es := elements(s, name, 1); len(es) > 0 {
		return es[0]
	}
	return nil
}

// attr 여는 태그에서 속성값을 추출한다.
func attr(tag, name string) (string, bool) {
	for from := 0; from < len(tag); {
		i := strings.Index(tag[from:], name)
		if i < 0 {
			return "", false
		}
		i += from
		from = i + len(name)

		// 속성 이름의 앞은 공백이어야 한다(예: data-href는 href가 아니다).
		if i == 0 || isSpace(tag[i-1]) == false {
			continue
		}

		j := i + len(name)
		for j < len(tag) && isSpace(tag[j]) {
			j++
		}
		if j >= len(tag) || tag[j] != '=' {
			continue
		}
		j++
		for j < len(tag) && isSpace(tag[j]) {
			j++
		}
		if j >= len(tag) || (tag[j] != '"' && tag[j] != '\'') {
			continue
		}

		quote := tag[j]
		k := strings.IndexByte(tag[j+1:], quote)
		if k < 0 {
			return "", false
		}

		return DecodeEntities(tag[j+1 : j+1+k]), true
	}

	return "", false
}

// text 태그 내용에서 CDATA 래퍼를 걷어내고 엔티티를 디코딩한 후 앞뒤 공백을 제거한다.
func text(inner string) string {
	return strings.TrimSpace(DecodeEntities(stripCDATA(inner)))
}

func stripCDATA(s string) string {
	const (
		cdataOpen  = "<![CDATA["
		cdataClose = "]]>"
	)

	if strings.Contains(s, cdataOpen) == false {
		return s
	}

	var b strings.Builder
	for {
		i := strings.Index(s, cdataOpen)
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i+len(cdataOpen):]

		j := strings.Index(s, cdataClose)
		if j < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:j])
		s = s[j+len(cdataClose):]
	}

	return b.String()
}
