package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/feeds"
	log "github.com/sirupsen/logrus"
)

const (
	// 직접 접근하는 경로의 이름
	directRouteName = "direct"

	// 응답 본문의 최대 크기
	maxBodySize = 10 * 1024 * 1024

	defaultTimeout      = 15 * time.Second
	defaultMaxRedirects = 5
)

var (
	ErrNetwork = errors.New("네트워크 오류가 발생하였습니다")
	ErrTimeout = errors.New("요청 시간이 초과되었습니다")

	// ErrMalformedDocument 응답 본문이 피드 문서가 아니다. 다시 요청해도 결과가 같으므로 재시도하지 않는다.
	ErrMalformedDocument = feeds.ErrMalformedDocument
)

// HTTPError 2xx 이외의 응답을 받았다.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP Response StatusCode %d (url:%s)", e.StatusCode, e.URL)
}

type Response struct {
	StatusCode int
	Body       []byte

	// 리다이렉트를 따라간 최종 URL
	URL string
	// 응답을 받은 경로의 이름
	Route string
}

// Route 직접 접근이 실패하였을 때 같은 피드를 가져오기 위해 시도하는 대체 경로
// Proxy는 http://, https://, socks5:// 주소를 사용할 수 있고,
// UrlTemplate이 지정되면 {url} 부분을 원래 URL(쿼리 이스케이프)로 치환한 주소로 요청한다.
type Route struct {
	Name        string
	Proxy       string
	UrlTemplate string
}

type Config struct {
	Timeout       time.Duration
	MaxAttempts   int
	Backoff       time.Duration
	MaxRedirects  int
	MinBodyLength int

	Routes []*Route

	// Validate 응답 본문이 기대하는 문서 형식인지 확인한다. nil이면 확인하지 않는다.
	Validate func(body []byte) error

	UserAgent string
}

type route struct {
	name        string
	client      *http.Client
	urlTemplate string
}

// Fetcher
type Fetcher struct {
	config Config

	routes []*route
}

func New(config *Config) (*Fetcher, error) {
	f := &Fetcher{
		config: *config,
	}

	if f.config.Timeout <= 0 {
		f.config.Timeout = defaultTimeout
	}
	if f.config.MaxAttempts < 1 {
		f.config.MaxAttempts = 1
	}
	if f.config.MaxRedirects < 0 {
		f.config.MaxRedirects = defaultMaxRedirects
	}

	direct, err := newRoute(&Route{Name: directRouteName})
	if err != nil {
		return nil, err
	}
	f.routes = append(f.routes, direct)

	for _, r := range config.Routes {
		alt, err := newRoute(r)
		if err != nil {
			return nil, err
		}
		f.routes = append(f.routes, alt)
	}

	return f, nil
}

func newRoute(r *Route) (*route, error) {
	transport, err := newTransport(r.Proxy)
	if err != nil {
		return nil, fmt.Errorf("대체 경로('%s')를 구성할 수 없습니다. (error:%w)", r.Name, err)
	}

	return &route{
		name: r.Name,
		client: &http.Client{
			Transport: transport,
			// 리다이렉트는 직접 처리한다.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		urlTemplate: r.UrlTemplate,
	}, nil
}

// Fetch 직접 경로로 한번 요청한다. 2xx 이외의 응답도 오류로 처리하지 않는다.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	return f.fetch(ctx, f.routes[0], rawURL)
}

// FetchWithRetry 직접 경로로 요청하며, 실패하면 시도 횟수에 비례하여 대기한 후 재시도한다.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string, maxAttempts int) (*Response, error) {
	return f.fetchWithRetry(ctx, f.routes[0], rawURL, maxAttempts)
}

// FetchDocument 직접 경로부터 대체 경로까지 순서대로 시도하여 처음으로 사용 가능한 피드 문서를 반환한다.
// 각 경로는 HTTP 200 응답, 최소 길이 이상의 본문, 문서 형식 검사를 모두 통과해야 성공으로 본다.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for _, r := range f.routes {
		if ctx.Err() != nil {
			break
		}

		res, err := f.fetchWithRetry(ctx, r, rawURL, f.config.MaxAttempts)
		if err == nil {
			err = f.evaluate(res)
		}
		if err == nil {
			if r != f.routes[0] {
				log.Infof("대체 경로('%s')를 이용하여 피드를 가져왔습니다. (url:%s)", r.name, rawURL)
			}
			return res.Body, nil
		}

		if len(f.routes) > 1 {
			log.Warnf("'%s' 경로로 피드를 가져오지 못했습니다. (url:%s) (error:%s)", r.name, rawURL, err)
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %s", ErrNetwork, ctx.Err())
	}

	return nil, lastErr
}

func (f *Fetcher) evaluate(res *Response) error {
	if res.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: res.StatusCode, URL: res.URL}
	}
	if len(res.Body) < f.config.MinBodyLength {
		return fmt.Errorf("%w: 응답 본문의 길이(%d bytes)가 너무 짧습니다", ErrMalformedDocument, len(res.Body))
	}
	if f.config.Validate != nil {
		if err := f.config.Validate(res.Body); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, r *route, rawURL string, maxAttempts int) (*Response, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := time.Duration(attempt-1) * f.config.Backoff

			log.Debugf("%s 이후에 다시 요청합니다. (%d/%d) (url:%s)", delay, attempt, maxAttempts, rawURL)

			if err := sleep(ctx, delay); err != nil {
				return nil, lastErr
			}
		}

		res, err := f.fetch(ctx, r, rawURL)
		if err == nil {
			if res.StatusCode >= 200 && res.StatusCode < 300 {
				return res, nil
			}
			err = &HTTPError{StatusCode: res.StatusCode, URL: res.URL}
		}
		lastErr = err

		log.Warnf("피드 요청이 실패하였습니다. (%d/%d) (route:%s, url:%s) (error:%s)", attempt, maxAttempts, r.name, rawURL, err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

// noinspection GoUnhandledErrorResult
func (f *Fetcher) fetch(ctx context.Context, r *route, rawURL string) (*Response, error) {
	target := rawURL
	if r.urlTemplate != "" {
		target = strings.ReplaceAll(r.urlTemplate, "{url}", url.QueryEscape(rawURL))
	}

	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	for hop := 0; ; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNetwork, err)
		}
		if f.config.UserAgent != "" {
			req.Header.Set("User-Agent", f.config.UserAgent)
		}
		req.Header.Set("Accept", "application/atom+xml, application/rss+xml, application/xml, text/xml, */*;q=0.8")

		res, err := r.client.Do(req)
		if err != nil {
			return nil, classify(err)
		}

		if isRedirect(res.StatusCode) == true {
			io.Copy(io.Discard, io.LimitReader(res.Body, maxBodySize))
			res.Body.Close()

			location := res.Header.Get("Location")
			if location == "" {
				return nil, fmt.Errorf("%w: 리다이렉트 응답(%d)에 Location 헤더가 없습니다", ErrNetwork, res.StatusCode)
			}
			if hop >= f.config.MaxRedirects {
				return nil, fmt.Errorf("%w: 리다이렉트 횟수(%d회)를 초과하였습니다", ErrNetwork, f.config.MaxRedirects)
			}

			u, err := req.URL.Parse(location)
			if err != nil {
				return nil, fmt.Errorf("%w: 리다이렉트 주소('%s')를 해석할 수 없습니다", ErrNetwork, location)
			}
			target = u.String()

			continue
		}

		body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
		res.Body.Close()
		if err != nil {
			return nil, classify(err)
		}

		return &Response{
			StatusCode: res.StatusCode,
			Body:       decodeCharset(body, res.Header.Get("Content-Type")),
			URL:        target,
			Route:      r.name,
		}, nil
	}
}

func isRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) == true || (errors.As(err, &netErr) == true && netErr.Timeout() == true) {
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %s", ErrNetwork, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
