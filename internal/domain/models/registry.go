package models

// Fingerprint запись реестра: номер слота шаблона в модуле и метка создания
type Fingerprint struct {
	Slot int    `json:"fingerprint"`
	Meta string `json:"meta"`
}

// RegistryDocument сохраняемый документ локального реестра
type RegistryDocument struct {
	NextID       int           `json:"nextId"`
	Fingerprints []Fingerprint `json:"fingerprints"`
}

// NewRegistryDocument возвращает пустой документ в начальном состоянии
func NewRegistryDocument() *RegistryDocument {
	return &RegistryDocument{
		NextID:       1,
		Fingerprints: make([]Fingerprint, 0),
	}
}

// Clone возвращает глубокую копию документа
func (d *RegistryDocument) Clone() *RegistryDocument {
	c := &RegistryDocument{
		NextID:       d.NextID,
		Fingerprints: make([]Fingerprint, len(d.Fingerprints)),
	}
	copy(c.Fingerprints, d.Fingerprints)
	return c
}

// Valid проверяет согласованность: слоты строго возрастают и меньше NextID
func (d *RegistryDocument) Valid() bool {
	if d.NextID < 1 {
		return false
	}
	prev := 0
	for _, fp := range d.Fingerprints {
		if fp.Slot <= prev || fp.Slot >= d.NextID {
			return false
		}
		prev = fp.Slot
	}
	return true
}
