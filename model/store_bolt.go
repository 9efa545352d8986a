package model

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

var kvStoreBucket = []byte("kv_store")

type boltStore struct {
	db *bolt.DB
}

func newBoltStore(path string) (*boltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(kvStoreBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Load() (*State, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// 트랜잭션이 끝나면 값이 유효하지 않으므로 복사해둔다.
		if v := tx.Bucket(kvStoreBucket).Get([]byte(stateKey)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return NewState(), err
	}

	return decodeState(data), nil
}

func (s *boltStore) Save(state *State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(kvStoreBucket).Put([]byte(stateKey), data)
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
