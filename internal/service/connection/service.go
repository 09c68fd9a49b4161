package connection

import (
	"context"
	"fmt"
	"sort"

	"go.bug.st/serial"

	"attendterm/internal/domain/ports"
	"attendterm/internal/service/registry"
)

// GetSystemPorts возвращает список доступных в системе последовательных портов
func GetSystemPorts() ([]string, error) {
	portsList, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	sort.Strings(portsList)
	return portsList, nil
}

// Status результат проверки модуля при загрузке
type Status struct {
	Capacity   int // Наибольший номер слота
	Templates  int // Шаблонов в модуле
	Registered int // Записей в реестре
}

// InSync сообщает, совпадает ли число шаблонов в модуле с реестром
func (s Status) InSync() bool {
	return s.Templates == s.Registered
}

// Service отвечает за установление связи с модулем отпечатков при загрузке
type Service struct {
	sensor   ports.Sensor
	registry *registry.Registry
	log      ports.Logger
}

// NewService создает новый экземпляр Service
func NewService(sensor ports.Sensor, reg *registry.Registry, log ports.Logger) *Service {
	return &Service{sensor: sensor, registry: reg, log: log.With("component", "connection")}
}

// Check выполняет рукопожатие и сверяет число шаблонов с реестром.
// Ошибка связи фатальна для загрузки; расхождение только журналируется.
func (s *Service) Check(ctx context.Context) (Status, error) {
	if err := s.sensor.Handshake(ctx); err != nil {
		return Status{}, fmt.Errorf("connection: sensor handshake: %w", err)
	}
	count, err := s.sensor.TemplateCount(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("connection: template count: %w", err)
	}

	st := Status{
		Capacity:   s.sensor.Capacity(),
		Templates:  count,
		Registered: s.registry.Len(),
	}
	if !st.InSync() {
		s.log.Warn("sensor library and registry disagree",
			"templates", st.Templates, "registered", st.Registered)
	}
	s.log.Info("sensor ready", "capacity", st.Capacity, "templates", st.Templates, "next_id", s.registry.NextID())
	return st, nil
}
