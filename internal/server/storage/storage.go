// Package storage models a named storage and binds its declarative Settings
// to a live engine.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/storage/engine"
	"github.com/google/uuid"
)

type Storage struct {
	ID       uuid.UUID
	Name     Name
	Settings Settings
}

// New mints a fresh id. It performs no I/O.
func New(name Name, settings Settings) Storage {
	return Storage{
		ID:       uuid.New(),
		Name:     name,
		Settings: settings,
	}
}

// Connect builds the engine described by the storage settings. The FS engine
// creates its base directory here.
func (s Storage) Connect(ctx context.Context) (engine.Engine, error) {
	switch v := s.Settings.(type) {
	case FSSettings:
		e, err := engine.NewFS(v.BasePath)
		if err != nil {
			return nil, err
		}
		return e, nil
	case S3Settings:
		e, err := engine.NewS3(ctx, v.engineConfig())
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: unsupported settings %T", engine.ErrInvalidSettings, s.Settings)
	}
}

type storageJSON struct {
	ID       uuid.UUID       `json:"id"`
	Name     Name            `json:"name"`
	Settings json.RawMessage `json:"settings"`
}

func (s Storage) MarshalJSON() ([]byte, error) {
	settings, err := EncodeSettings(s.Settings)
	if err != nil {
		return nil, err
	}
	return json.Marshal(storageJSON{ID: s.ID, Name: s.Name, Settings: settings})
}

func (s *Storage) UnmarshalJSON(data []byte) error {
	var w storageJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	settings, err := DecodeSettings(w.Settings)
	if err != nil {
		return err
	}

	*s = Storage{ID: w.ID, Name: w.Name, Settings: settings}
	return nil
}
