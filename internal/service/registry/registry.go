package registry

import (
	"errors"
	"fmt"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
)

// ErrSlotMismatch попытка записать слот, отличный от NextID
var ErrSlotMismatch = errors.New("registry: slot is not the next free slot")

// Registry локальный реестр слотов. Владеет документом в памяти и
// сохраняет его целиком после каждого изменения; состояние в памяти
// меняется только после успешной записи.
type Registry struct {
	repo ports.RegistryRepository
	doc  *models.RegistryDocument
	log  ports.Logger
}

// Open загружает реестр. Ошибка чтения или разбора не фатальна:
// реестр начинается с пустого документа.
func Open(repo ports.RegistryRepository, log ports.Logger) *Registry {
	doc, err := repo.Load()
	if err != nil {
		log.Warn("registry unreadable, starting empty", "err", err)
	}
	if doc == nil {
		doc = models.NewRegistryDocument()
	}
	log.Info("registry loaded", "nextId", doc.NextID, "entries", len(doc.Fingerprints))
	return &Registry{repo: repo, doc: doc, log: log}
}

// NextID номер слота для следующей регистрации
func (r *Registry) NextID() int {
	return r.doc.NextID
}

// Len количество записей
func (r *Registry) Len() int {
	return len(r.doc.Fingerprints)
}

// Entries копия списка записей
func (r *Registry) Entries() []models.Fingerprint {
	return r.Snapshot().Fingerprints
}

// Snapshot копия документа
func (r *Registry) Snapshot() *models.RegistryDocument {
	return r.doc.Clone()
}

// Contains проверяет, занят ли слот
func (r *Registry) Contains(slot int) bool {
	for _, fp := range r.doc.Fingerprints {
		if fp.Slot == slot {
			return true
		}
	}
	return false
}

// Commit добавляет запись для слота NextID, увеличивает NextID и сохраняет документ
func (r *Registry) Commit(slot int, meta string) error {
	if slot != r.doc.NextID {
		return fmt.Errorf("%w: got %d, want %d", ErrSlotMismatch, slot, r.doc.NextID)
	}
	next := r.doc.Clone()
	next.Fingerprints = append(next.Fingerprints, models.Fingerprint{Slot: slot, Meta: meta})
	next.NextID = slot + 1

	if err := r.repo.Save(next); err != nil {
		return fmt.Errorf("registry: persist slot %d: %w", slot, err)
	}
	r.doc = next
	return nil
}

// Reset приводит реестр к начальному пустому состоянию и сохраняет его
func (r *Registry) Reset() error {
	next := models.NewRegistryDocument()
	if err := r.repo.Save(next); err != nil {
		return fmt.Errorf("registry: persist reset: %w", err)
	}
	r.doc = next
	return nil
}
