package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/pfrederiksen/event-reminder/internal/event"
	"github.com/pfrederiksen/event-reminder/internal/logger"
)

const (
	// FilePermissions is the mode of the data file.
	FilePermissions = 0644
	// TmpSuffix is appended to the data file name while a save is in flight.
	TmpSuffix = ".tmp"
	// CorruptSuffix is appended to an unparsable data file before it is replaced.
	CorruptSuffix = ".corrupt"
)

// Storage handles persistence of the event list
type Storage struct {
	fs   billy.Filesystem
	name string
}

// New creates a Storage for the data file at path, creating its directory.
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return NewWithFS(osfs.New(dir), filepath.Base(path)), nil
}

// NewWithFS creates a Storage for the file name inside fs.
func NewWithFS(fs billy.Filesystem, name string) *Storage {
	return &Storage{fs: fs, name: name}
}

// Path returns the data file location.
func (s *Storage) Path() string {
	return s.fs.Join(s.fs.Root(), s.name)
}

// Load reads the event list. A missing, empty or unparsable file yields an
// empty list, which is written back so the file always holds a valid document.
func (s *Storage) Load() (*event.Store, error) {
	data, err := util.ReadFile(s.fs, s.name)
	if err != nil {
		if os.IsNotExist(err) {
			return s.reset()
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.reset()
	}

	var store event.Store
	if err := json.Unmarshal(data, &store); err != nil {
		backup := s.name + CorruptSuffix
		logger.Warn("Store is unparsable, starting empty", logger.Fields{
			"path":   s.Path(),
			"backup": backup,
			"error":  err.Error(),
		})
		if err := s.fs.Rename(s.name, backup); err != nil {
			return nil, fmt.Errorf("backing up corrupt store: %w", err)
		}
		return s.reset()
	}

	if store.Events == nil {
		store.Events = make([]event.Event, 0)
	}
	if !event.IsSorted(store.Events) {
		logger.Debug("Store out of date order, sorting", logger.Fields{"path": s.Path()})
		event.Sort(store.Events)
	}

	return &store, nil
}

// reset writes and returns an empty store.
func (s *Storage) reset() (*event.Store, error) {
	store := event.NewStore()
	if err := s.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Save rewrites the whole document. It writes a temp file first and renames
// it over the data file.
func (s *Storage) Save(store *event.Store) error {
	if store.Events == nil {
		store.Events = make([]event.Event, 0)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	tmp := s.name + TmpSuffix
	if err := util.WriteFile(s.fs, tmp, data, FilePermissions); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}

	if err := s.fs.Rename(tmp, s.name); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}

	logger.Debug("Saved store", logger.Fields{
		"path":   s.Path(),
		"events": len(store.Events),
	})

	return nil
}
