package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var formatCommasRegexp = regexp.MustCompile(`(\d+)(\d{3})`)

func CheckErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func Contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// Trim 앞뒤 공백을 제거하고, 연속된 공백(개행 포함)은 하나의 공백으로 합친다.
func Trim(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

// Ellipsis 문자열이 limit 글자를 넘으면 잘라내고 말줄임표를 붙인다.
func Ellipsis(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	return string([]rune(s)[:limit]) + "..."
}

func FormatCommas(num int) string {
	str := fmt.Sprintf("%d", num)
	for n := ""; n != str; {
		n = str
		str = formatCommasRegexp.ReplaceAllString(str, "$1,$2")
	}
	return str
}
