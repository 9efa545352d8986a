package model

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	StoreDriverSqlite = "sqlite"
	StoreDriverBolt   = "bolt"

	// 저장소에 State 문서가 저장되는 키
	stateKey = "state"
)

var errNotSupportedStoreDriver = errors.New("지원하지 않는 저장소 드라이버입니다")

// Store State 문서 전체를 한번에 읽고 쓰는 저장소
// Save는 문서 전체를 하나의 트랜잭션으로 교체하므로, 읽는 쪽에서 일부만 기록된 상태를 보는 일은 없다.
type Store interface {
	Load() (*State, error)
	Save(state *State) error
	Close() error
}

func NewStore(driver, path string) (Store, error) {
	switch driver {
	case StoreDriverSqlite:
		return newSqliteStore(path)
	case StoreDriverBolt:
		return newBoltStore(path)
	}

	return nil, fmt.Errorf("%w (driver:%s)", errNotSupportedStoreDriver, driver)
}

func encodeState(state *State) ([]byte, error) {
	return json.Marshal(state)
}

// decodeState 저장된 문서가 손상된 경우에는 빈 State를 반환한다.
func decodeState(data []byte) *State {
	state := NewState()
	if len(data) == 0 {
		return state
	}

	if err := json.Unmarshal(data, state); err != nil {
		log.Warnf("저장된 상태 정보를 읽을 수 없어 빈 상태로 시작합니다. (error:%s)", err)

		return NewState()
	}
	state.normalize()

	return state
}
