package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/pfrederiksen/event-reminder/internal/event"
)

const dataFile = "dates.json"

func TestLoad_EmptyOrMissing(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, s *Storage) // Setup function to create the data file
		backup bool
	}{
		{
			name:  "No data file exists",
			setup: func(t *testing.T, s *Storage) {},
		},
		{
			name: "Empty data file",
			setup: func(t *testing.T, s *Storage) {
				if err := util.WriteFile(s.fs, dataFile, nil, FilePermissions); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			},
		},
		{
			name: "Whitespace only",
			setup: func(t *testing.T, s *Storage) {
				if err := util.WriteFile(s.fs, dataFile, []byte("  \n"), FilePermissions); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			},
		},
		{
			name: "Unparsable data file",
			setup: func(t *testing.T, s *Storage) {
				if err := util.WriteFile(s.fs, dataFile, []byte("{not json"), FilePermissions); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			},
			backup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithFS(memfs.New(), dataFile)
			tt.setup(t, s)

			store, err := s.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if store.Len() != 0 {
				t.Errorf("Load() returned %d events, want 0", store.Len())
			}

			data, err := util.ReadFile(s.fs, dataFile)
			if err != nil {
				t.Fatalf("data file was not written: %v", err)
			}
			if got := strings.Join(strings.Fields(string(data)), ""); got != `{"event":[]}` {
				t.Errorf("data file = %s, want {\"event\": []}", data)
			}

			_, err = s.fs.Stat(dataFile + CorruptSuffix)
			if hasBackup := err == nil; hasBackup != tt.backup {
				t.Errorf("backup present = %v, want %v", hasBackup, tt.backup)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := NewWithFS(memfs.New(), dataFile)

	store := event.NewStore()
	store.Insert(event.NewEvent(event.Date{Year: 2026, Month: time.December, Day: 24}, "Christmas Eve", true))
	store.Insert(event.NewEvent(event.Date{Year: 2026, Month: time.November, Day: 2}, "", false))

	if err := s.Save(store); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := s.fs.Stat(dataFile + TmpSuffix); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Load() returned %d events, want 2", loaded.Len())
	}
	if loaded.Events[0].Date.String() != "2026-11-02" || loaded.Events[0].Label != nil {
		t.Errorf("first event = %+v", loaded.Events[0])
	}
	if loaded.Events[1].LabelText() != "Christmas Eve" || !loaded.Events[1].Cycle {
		t.Errorf("second event = %+v", loaded.Events[1])
	}
}

func TestLoad_SortsHandEditedFile(t *testing.T) {
	s := NewWithFS(memfs.New(), dataFile)
	content := `{"event": [
		{"date": "2027-01-05", "label": "late", "cycle": false},
		{"date": "2026-11-02", "label": "early", "cycle": false}
	]}`
	if err := util.WriteFile(s.fs, dataFile, []byte(content), FilePermissions); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	store, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !event.IsSorted(store.Events) || store.Events[0].LabelText() != "early" {
		t.Errorf("Load() events = %+v, want date order", store.Events)
	}
}

func TestSave_NilEvents(t *testing.T) {
	s := NewWithFS(memfs.New(), dataFile)

	if err := s.Save(&event.Store{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := util.ReadFile(s.fs, dataFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("nil events should be written as [], got %s", data)
	}
}

func TestNew_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", dataFile)

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}

	if _, err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("data file not created: %v", err)
	}
}
