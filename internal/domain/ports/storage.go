package ports

import "attendterm/internal/domain/models"

// RegistryRepository хранилище документа локального реестра.
// Реализация находится в слое Infrastructure.
type RegistryRepository interface {
	// Load читает документ целиком
	Load() (*models.RegistryDocument, error)

	// Save атомарно заменяет документ целиком
	Save(doc *models.RegistryDocument) error
}
