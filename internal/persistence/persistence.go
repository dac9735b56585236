package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/pid"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketControllerStates = "controllerStates"
)

// ControllerState is the persisted state of the controller of a single loop.
type ControllerState struct {
	State   pid.State[float64] `json:"state"`
	SavedAt time.Time          `json:"savedAt"`
}

type Persistence interface {
	Init() error

	LoadControllerState(loopId string) (ControllerState, error)
	LoadControllerStates() (map[string]ControllerState, error)
	SaveControllerState(loopId string, state pid.State[float64]) error
	DeleteControllerState(loopId string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
		return nil
	}
	return err
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// LoadControllerState loads the last saved controller state of the given loop.
// Returns os.ErrNotExist if there is none.
func (p persistence) LoadControllerState(loopId string) (ControllerState, error) {
	db, err := p.openPersistence()
	if err != nil {
		return ControllerState{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var state ControllerState
	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketControllerStates))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(loopId))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &state)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved controller state for %s: %v", loopId, err)
			err := b.Delete([]byte(loopId))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", loopId, err)
			}
			// returning an error here would roll back the delete
			corrupt = true
		}
		return nil
	})
	if err == nil && corrupt {
		return ControllerState{}, os.ErrNotExist
	}

	return state, err
}

// LoadControllerStates loads the saved controller states of all loops, keyed by loop id.
// Entries that cannot be read are skipped.
func (p persistence) LoadControllerStates() (map[string]ControllerState, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	result := map[string]ControllerState{}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketControllerStates))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var state ControllerState
			if err := json.Unmarshal(v, &state); err != nil {
				ui.Warning("Skipping unreadable controller state for %s: %v", string(k), err)
				return nil
			}
			result[string(k)] = state
			return nil
		})
	})

	return result, err
}

// SaveControllerState saves the given controller state of a loop, replacing any previous one.
func (p persistence) SaveControllerState(loopId string, state pid.State[float64]) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(ControllerState{
		State:   state,
		SavedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketControllerStates))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(loopId), data)
	})
}

// DeleteControllerState deletes the saved controller state of a loop, if any.
func (p persistence) DeleteControllerState(loopId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketControllerStates))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(loopId))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(loopId))
	})
}
