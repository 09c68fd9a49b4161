package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
)

// ErrInvalidDocument документ прочитан, но нарушает инварианты реестра
var ErrInvalidDocument = errors.New("storage: invalid registry document")

// FileRegistryRepository реализует ports.RegistryRepository с хранением в JSON-файле.
type FileRegistryRepository struct {
	mu       sync.Mutex
	filePath string
}

// NewFileRegistryRepository создает репозиторий и проверяет, что каталог для файла доступен.
// Недоступный каталог считается фатальной ошибкой хранилища при загрузке терминала.
func NewFileRegistryRepository(filePath string) (ports.RegistryRepository, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create directory %s: %w", dir, err)
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return nil, fmt.Errorf("storage: directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return &FileRegistryRepository{filePath: filePath}, nil
}

// Load читает документ. Отсутствующий файл даёт пустой документ без ошибки;
// нечитаемый или повреждённый файл даёт пустой документ и ошибку.
func (r *FileRegistryRepository) Load() (*models.RegistryDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadFromFile()
}

// Save атомарно заменяет документ целиком.
func (r *FileRegistryRepository) Save(doc *models.RegistryDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveToFile(doc)
}

// loadFromFile (не потокобезопасно, для внутреннего использования)
func (r *FileRegistryRepository) loadFromFile() (*models.RegistryDocument, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewRegistryDocument(), nil
		}
		return models.NewRegistryDocument(), fmt.Errorf("storage: read registry: %w", err)
	}

	var doc models.RegistryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.NewRegistryDocument(), fmt.Errorf("storage: parse registry: %w", err)
	}
	if doc.Fingerprints == nil {
		doc.Fingerprints = make([]models.Fingerprint, 0)
	}
	if !doc.Valid() {
		return models.NewRegistryDocument(), ErrInvalidDocument
	}
	return &doc, nil
}

// saveToFile пишет во временный файл в том же каталоге и переименовывает его,
// чтобы читатели никогда не видели частично записанный документ.
func (r *FileRegistryRepository) saveToFile(doc *models.RegistryDocument) error {
	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal registry: %w", err)
	}

	dir := filepath.Dir(r.filePath)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write registry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close registry: %w", err)
	}
	if err := os.Rename(tmpName, r.filePath); err != nil {
		return fmt.Errorf("storage: replace registry: %w", err)
	}
	return nil
}
