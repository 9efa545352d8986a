package model

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewStore(t *testing.T) {
	assert := assert.New(t)

	_, err := NewStore("mysql", filepath.Join(t.TempDir(), "state.db"))
	assert.ErrorIs(err, errNotSupportedStoreDriver)
}

func TestStore(t *testing.T) {
	for _, driver := range []string{StoreDriverSqlite, StoreDriverBolt} {
		t.Run(driver, func(t *testing.T) {
			assert := assert.New(t)

			s, err := NewStore(driver, filepath.Join(t.TempDir(), "state.db"))
			assert.NoError(err)
			defer s.Close()

			// 저장된 문서가 없다면 빈 State를 반환한다.
			state, err := s.Load()
			assert.NoError(err)
			assert.NotNil(state.Seen)
			assert.NotNil(state.Errors)
			assert.Empty(state.Seen)

			seenAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
			state.Seen["ch1"] = NewSeenSet()
			state.Seen["ch1"].Add("v1", seenAt)
			state.Seen["ch1"].Add("v2", seenAt)
			state.Errors["ch2"] = &ErrorState{Message: "HTTP 404", OccurredAt: seenAt}
			assert.NoError(s.Save(state))

			loaded, err := s.Load()
			assert.NoError(err)
			assert.Equal([]string{"v1", "v2"}, loaded.Seen["ch1"].IDs())
			assert.True(loaded.Seen["ch1"].Contains("v2"))
			assert.Equal("HTTP 404", loaded.Errors["ch2"].Message)
			assert.True(seenAt.Equal(loaded.Errors["ch2"].OccurredAt))

			// 문서 전체가 교체되어야 한다.
			delete(state.Errors, "ch2")
			assert.NoError(s.Save(state))

			loaded, err = s.Load()
			assert.NoError(err)
			assert.Empty(loaded.Errors)
		})
	}
}

func TestDecodeState(t *testing.T) {
	assert := assert.New(t)

	state := decodeState(nil)
	assert.Empty(state.Seen)

	// 손상된 문서는 빈 State로 대체된다.
	state = decodeState([]byte(`{"seen":[1,2`))
	assert.NotNil(state.Seen)
	assert.Empty(state.Seen)

	state = decodeState([]byte(`{"seen":{"ch1":null}}`))
	assert.NotNil(state.Errors)
	assert.Empty(state.Seen)

	// 빈 항목은 제거되고 나머지 항목은 그대로 사용할 수 있다.
	state = decodeState([]byte(`{"seen":{"ch1":{"entries":[null,{"id":"v1","first_seen_at":"2024-01-01T00:00:00Z"},null]},"ch2":{"entries":[null]}},"errors":{"ch1":null,"ch2":{"message":"error"}}}`))
	assert.Equal([]string{"v1"}, state.Seen["ch1"].IDs())
	assert.True(state.Seen["ch1"].Contains("v1"))
	assert.True(state.Seen["ch1"].Add("v2", time.Now()))
	assert.Equal(0, state.Seen["ch2"].Len())
	assert.False(state.Seen["ch2"].Contains("v1"))
	assert.NotContains(state.Errors, "ch1")
	assert.Equal("error", state.Errors["ch2"].Message)
	assert.NotPanics(func() {
		c := state.Clone()
		assert.Equal(2, c.Seen["ch1"].Len())
		assert.Equal(1, len(c.Errors))
	})
}
