package diary

import (
	"os"
	"sort"
	"sync"

	json "github.com/goccy/go-json"

	"sdd/internal/models"
	"sdd/internal/providers"
	"sdd/internal/structures"
)

// StoreInterface is the persistence contract for diary records. The whole
// collection lives in one JSON blob; every mutation is a read-modify-write
// of that blob.
type StoreInterface interface {
	List() ([]*models.DiaryRecord, error)
	Create(record *models.DiaryRecord) error
	Update(record *models.DiaryRecord) error
	Delete(id string) error
}

type Store struct {
	filePath string
	strict   bool
	logger   providers.Logger
	mu       sync.Mutex
}

func NewStore(conf *structures.Config, logger providers.Logger) StoreInterface {
	return &Store{
		filePath: conf.Persistence.FilePath,
		strict:   conf.Diary.StrictUpdate,
		logger:   logger,
	}
}

// List returns all records sorted descending by date. A missing blob is an
// empty collection, not an error.
func (s *Store) List() ([]*models.DiaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (s *Store) Create(record *models.DiaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.persist(records)
}

// Update replaces the record matching the given id and rewrites the blob.
// An unknown id completes without effect, unless strict mode upgrades it
// to ErrRecordNotFound.
func (s *Store) Update(record *models.DiaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	for i, r := range records {
		if r.ID == record.ID {
			records[i] = record
			return s.persist(records)
		}
	}

	if s.strict {
		return ErrRecordNotFound
	}
	s.logger.Debugf(providers.TypeApp, "Update for unknown record %s ignored", record.ID)
	return nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return s.persist(kept)
}

// load reads and decodes the blob. Caller holds s.mu.
func (s *Store) load() ([]*models.DiaryRecord, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, storageErr("read", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, storageErr("decode", err)
	}

	// Blobs written by pre-title/pre-summary layouts are not migrated;
	// the store resets to empty instead (and removes the blob so the
	// reset sticks).
	for _, obj := range raw {
		if _, ok := obj["title"]; !ok {
			return nil, s.discardLegacyBlob()
		}
		if _, ok := obj["summary"]; !ok {
			return nil, s.discardLegacyBlob()
		}
	}

	var records []*models.DiaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, storageErr("decode", err)
	}
	return records, nil
}

func (s *Store) discardLegacyBlob() error {
	s.logger.Warnf(providers.TypeApp, "Obsolete diary blob layout detected, resetting %s", s.filePath)
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return storageErr("reset", err)
	}
	return nil
}

// persist serializes the collection and writes it atomically. Caller holds s.mu.
func (s *Store) persist(records []*models.DiaryRecord) error {
	if records == nil {
		records = []*models.DiaryRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return storageErr("encode", err)
	}

	tmpFile := s.filePath + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return storageErr("write", err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return storageErr("write", err)
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return storageErr("write", err)
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return storageErr("write", err)
	}

	if err = os.Rename(tmpFile, s.filePath); err != nil {
		return storageErr("write", err)
	}
	return nil
}
