package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/logger"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// IDirectoryService is the employee roster, merged from the team
// contacts file and the user profiles file. Email is the identity key;
// duplicate names are allowed and resolved by the matcher downstream.
type IDirectoryService interface {
	People() []store.Person
	FindByEmail(email string) (store.Person, bool)
	Reload() error
}

type directoryService struct {
	mu     sync.RWMutex
	people []store.Person
	paths  []string
	log    logger.ILogger
}

func NewDirectoryService(dataDir string, log logger.ILogger) (IDirectoryService, error) {
	s := &directoryService{
		paths: []string{
			filepath.Join(dataDir, "team_contacts.json"),
			filepath.Join(dataDir, "user_profiles.json"),
		},
		log: log,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *directoryService) People() []store.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.people
}

func (s *directoryService) FindByEmail(email string) (store.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.people {
		if strings.EqualFold(p.Email, email) {
			return p, true
		}
	}
	return store.Person{}, false
}

// Reload re-reads both files. A missing file is fine; a corrupt one is
// not. The first file to mention an email wins its name, later files
// only fill empty fields.
func (s *directoryService) Reload() error {
	merged := make([]store.Person, 0)
	index := make(map[string]int)

	for _, path := range s.paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				s.log.Warn("directory", "roster file missing, skipping", map[string]interface{}{"path": path})
				continue
			}
			return err
		}
		var people []store.Person
		if err := json.Unmarshal(raw, &people); err != nil {
			return err
		}
		for _, p := range people {
			key := strings.ToLower(strings.TrimSpace(p.Email))
			if key == "" {
				continue
			}
			p.Email = key
			if at, seen := index[key]; seen {
				if merged[at].Department == "" {
					merged[at].Department = p.Department
				}
				if merged[at].Title == "" {
					merged[at].Title = p.Title
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, p)
		}
	}

	s.mu.Lock()
	s.people = merged
	s.mu.Unlock()
	s.log.Info("directory", "roster loaded", map[string]interface{}{"people": len(merged)})
	return nil
}
