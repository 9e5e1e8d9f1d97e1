package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"flowstate.app/flowstate-api/internal/constants"
	model "flowstate.app/flowstate-api/internal/models"
)

// Store persists the full task collection as one pretty-printed JSON
// array. Writes go to a temporary sibling file first and are renamed
// over the canonical path, so a reader always sees either the old or the
// new complete document.
//
// A backing file that is missing, blank, or not a JSON array is treated
// as corruption and silently replaced with the seed collection. That
// favors availability over failure signaling; reseeds are logged and
// counted so an operator can detect silent resets.
type Store struct {
	path        string
	seedSamples bool
	reseeds     atomic.Int64

	// OnReseed, when set, is invoked with the reason each time the
	// backing file is reinitialized.
	OnReseed func(reason string)
}

func NewStore(path string, seedSamples bool) *Store {
	return &Store{
		path:        path,
		seedSamples: seedSamples,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Reseeds reports how many times the backing file has been reinitialized
// since the store was created.
func (s *Store) Reseeds() int64 {
	return s.reseeds.Load()
}

// Load reads the task collection. It never fails on a corrupt or missing
// file: the store reinitializes itself with the seed collection and
// returns that instead. Only a disk-level failure while writing the seed
// surfaces as an error.
func (s *Store) Load() ([]model.Task, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.reseed("tasks file does not exist")
		}
		return s.reseed(fmt.Sprintf("tasks file unreadable: %v", err))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.reseed("tasks file is empty")
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return s.reseed(fmt.Sprintf("tasks file contains invalid JSON: %v", err))
	}
	if tasks == nil {
		// Valid JSON, but not an array.
		return s.reseed("tasks file does not hold an array")
	}

	return tasks, nil
}

// Save atomically replaces the task collection on disk. A nil slice is
// stored as an empty array so the file never holds "null".
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}

	return nil
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return nil
}

func (s *Store) reseed(reason string) ([]model.Task, error) {
	log.Printf("storage: reinitializing %s: %s", s.path, reason)
	s.reseeds.Add(1)
	if s.OnReseed != nil {
		s.OnReseed(reason)
	}

	seed := []model.Task{}
	if s.seedSamples {
		seed = SampleTasks(time.Now())
	}
	if err := s.Save(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// SampleTasks returns the demo collection used to seed a fresh or
// corrupted store.
func SampleTasks(now time.Time) []model.Task {
	return []model.Task{
		{
			ID:            1,
			Title:         "Complete project proposal",
			Description:   "Write comprehensive project proposal for Q2",
			Category:      "Work",
			Priority:      constants.PriorityHigh,
			DueDate:       "2025-07-20T15:30",
			EstimatedTime: "4",
			AssignedTo:    "John Doe",
			Tags:          "project,urgent,proposal",
			Status:        constants.StatusInProgress,
			Completed:     false,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            2,
			Title:         "Review team feedback",
			Description:   "Go through team feedback on last sprint",
			Category:      "Work",
			Priority:      constants.PriorityMedium,
			DueDate:       "2025-07-18T10:00",
			EstimatedTime: "2",
			AssignedTo:    "Self",
			Tags:          "review,team",
			Status:        constants.StatusTodo,
			Completed:     false,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
