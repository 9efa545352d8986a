package g

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/youtube-feed-notifier/model"
	"github.com/darkkaiser/youtube-feed-notifier/utils"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	AppName    string = "youtube-feed-notifier"
	AppVersion string = "1.0.0"

	AppConfigFileName = AppName + ".json"

	// 환경변수로 설정값을 덮어쓸 때 사용하는 접두어(예: YFN_WS__LISTEN_PORT=8080)
	envPrefix = "YFN_"
)

var ErrConfig = errors.New("환경설정 정보가 유효하지 않습니다")

type StoreDriver string

const (
	StoreDriverSqlite StoreDriver = model.StoreDriverSqlite
	StoreDriverBolt   StoreDriver = model.StoreDriverBolt
)

type AppConfig struct {
	Debug bool `koanf:"debug"`
	Watch struct {
		TimeSpec        string          `koanf:"time_spec" validate:"required"`
		CourtesyDelay   time.Duration   `koanf:"courtesy_delay" validate:"gte=0"`
		MaxSeenItems    int             `koanf:"max_seen_items" validate:"gte=1"`
		MaxActivityLogs int             `koanf:"max_activity_logs" validate:"gte=1"`
		Parser          string          `koanf:"parser" validate:"oneof=scanner gofeed"`
		Recipient       string          `koanf:"recipient"`
		Channels        []ChannelConfig `koanf:"channels"`
	} `koanf:"watch"`
	Fetch struct {
		Timeout       time.Duration  `koanf:"timeout" validate:"gt=0"`
		MaxAttempts   int            `koanf:"max_attempts" validate:"gte=1"`
		Backoff       time.Duration  `koanf:"backoff" validate:"gte=0"`
		MaxRedirects  int            `koanf:"max_redirects" validate:"gte=0"`
		MinBodyLength int            `koanf:"min_body_length" validate:"gte=0"`
		Routes        []*RouteConfig `koanf:"routes" validate:"dive"`
	} `koanf:"fetch"`
	Store struct {
		Driver StoreDriver `koanf:"driver" validate:"oneof=sqlite bolt"`
		Path   string      `koanf:"path" validate:"required"`
	} `koanf:"store"`
	WS struct {
		TLSServer   bool   `koanf:"tls_server"`
		TLSCertFile string `koanf:"tls_cert_file" validate:"required_if=TLSServer true"`
		TLSKeyFile  string `koanf:"tls_key_file" validate:"required_if=TLSServer true"`
		ListenPort  int    `koanf:"listen_port" validate:"min=1,max=65535"`
	} `koanf:"ws"`
	NotifyAPI struct {
		Url           string `koanf:"url" validate:"required,http_url"`
		APIKey        string `koanf:"api_key" validate:"required"`
		ApplicationID string `koanf:"application_id" validate:"required"`
	} `koanf:"notify_api"`
}

type ChannelConfig struct {
	ID   string `koanf:"id" validate:"required"`
	Name string `koanf:"name" validate:"required"`
}

// RouteConfig 직접 접근이 실패하였을 때 시도하는 대체 경로
type RouteConfig struct {
	Name        string `koanf:"name" validate:"required"`
	Proxy       string `koanf:"proxy" validate:"omitempty,url"`
	UrlTemplate string `koanf:"url_template"`
}

func defaultAppConfig() *AppConfig {
	config := &AppConfig{}

	config.Watch.TimeSpec = "@every 10m"
	config.Watch.CourtesyDelay = 2 * time.Second
	config.Watch.MaxSeenItems = 100
	config.Watch.MaxActivityLogs = 200
	config.Watch.Parser = "scanner"

	config.Fetch.Timeout = 15 * time.Second
	config.Fetch.MaxAttempts = 3
	config.Fetch.Backoff = 3 * time.Second
	config.Fetch.MaxRedirects = 5
	config.Fetch.MinBodyLength = 100

	config.Store.Driver = StoreDriverSqlite
	config.Store.Path = fmt.Sprintf("./%s.db", AppName)

	config.WS.ListenPort = 8080

	return config
}

func InitAppConfig() *AppConfig {
	config, err := LoadAppConfig(AppConfigFileName)
	if err != nil {
		log.Panicf("%s 파일을 읽어들이는 중에 오류가 발생하였습니다. (error:%s)", AppConfigFileName, err)
	}

	return config
}

// LoadAppConfig 기본값, 설정파일, 환경변수 순서로 설정값을 읽어들인 후 유효성 검사를 한다.
func LoadAppConfig(path string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultAppConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}

	var config AppConfig
	if err := unmarshal(k, "", &config); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}

	if err := config.validation(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *AppConfig) validation() error {
	c.NotifyAPI.Url = strings.TrimSpace(c.NotifyAPI.Url)
	c.NotifyAPI.APIKey = strings.TrimSpace(c.NotifyAPI.APIKey)
	c.NotifyAPI.ApplicationID = strings.TrimSpace(c.NotifyAPI.ApplicationID)

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrConfig, err)
	}

	var routeNames []string
	for _, r := range c.Fetch.Routes {
		if utils.Contains(routeNames, r.Name) == true {
			return fmt.Errorf("%w: 대체 경로의 Name('%s')이 중복되었습니다", ErrConfig, r.Name)
		}
		routeNames = append(routeNames, r.Name)

		if r.Proxy == "" && r.UrlTemplate == "" {
			return fmt.Errorf("%w: 대체 경로('%s')의 Proxy 또는 UrlTemplate이 입력되지 않았습니다", ErrConfig, r.Name)
		}
		if r.UrlTemplate != "" && strings.Contains(r.UrlTemplate, "{url}") == false {
			return fmt.Errorf("%w: 대체 경로('%s')의 UrlTemplate에 {url}이 포함되어 있지 않습니다", ErrConfig, r.Name)
		}
	}

	return nil
}

// LoadSources 설정파일에서 모니터링 할 채널 목록만 다시 읽어들인다.
// 매 폴링 주기마다 호출되므로 서버를 재시작하지 않고도 채널을 추가/삭제할 수 있다.
// 유효하지 않은 항목은 로그를 남기고 제외한다.
func LoadSources(path string) ([]*model.Source, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}

	var channels []ChannelConfig
	if err := unmarshal(k, "watch.channels", &channels); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}

	validate := validator.New()

	sources := make([]*model.Source, 0, len(channels))
	for i, c := range channels {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)

		if err := validate.Struct(&c); err != nil {
			log.Warnf("%d번째 채널 정보가 유효하지 않아 제외합니다. (ID:%s, Name:%s) (error:%s)", i+1, c.ID, c.Name, err)
			continue
		}

		if containsSource(sources, c.ID) == true {
			log.Warnf("채널 ID('%s')가 중복되어 제외합니다.", c.ID)
			continue
		}

		sources = append(sources, &model.Source{ID: c.ID, Name: c.Name})
	}

	return sources, nil
}

func unmarshal(k *koanf.Koanf, path string, o interface{}) error {
	return k.UnmarshalWithConf(path, o, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           o,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
}

func containsSource(sources []*model.Source, id string) bool {
	for _, s := range sources {
		if s.ID == id {
			return true
		}
	}
	return false
}
