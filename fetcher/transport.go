package fetcher

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/http"
	"net/url"
	"regexp"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding"
)

var xmlEncodingRegexp = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding\s*=\s*["']([A-Za-z0-9._\-]+)["']`)

func newTransport(proxyURL string) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL == "" {
		return transport, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)

	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, err
		}

		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok == true {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}

	default:
		return nil, fmt.Errorf("지원하지 않는 프록시 스킴('%s')입니다", u.Scheme)
	}

	return transport, nil
}

// decodeCharset Content-Type 헤더나 XML 선언에 명시된 문자셋이 UTF-8이 아니라면 UTF-8로 변환한다.
func decodeCharset(body []byte, contentType string) []byte {
	var label string
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label = params["charset"]
	}

	var m []int
	if m = xmlEncodingRegexp.FindSubmatchIndex(body); label == "" && m != nil {
		label = string(body[m[2]:m[3]])
	}
	if label == "" {
		return body
	}

	e, name := charset.Lookup(label)
	if e == nil || name == "utf-8" {
		return body
	}

	decoded, err := decode(e, body)
	if err != nil {
		log.Warnf("응답 본문의 문자셋(%s) 변환이 실패하였습니다. (error:%s)", name, err)
		return body
	}

	// 본문은 이미 UTF-8로 변환되었으므로 XML 선언의 인코딩도 맞춰준다.
	if m = xmlEncodingRegexp.FindSubmatchIndex(decoded); m != nil {
		decoded = append(append(append([]byte{}, decoded[:m[2]]...), "UTF-8"...), decoded[m[3]:]...)
	}

	return decoded
}

func decode(e encoding.Encoding, body []byte) ([]byte, error) {
	return e.NewDecoder().Bytes(body)
}
