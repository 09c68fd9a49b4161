package time

import (
	"fmt"
	"sync"
	"time"

	"attendterm/internal/domain/ports"
)

// Layouts, принимаемые для имитируемого времени
var simulatedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// SystemClock реализует ports.Clock поверх системных часов
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// TimeService отвечает за форматирование меток времени для сервиса посещаемости
type TimeService struct {
	clock     ports.Clock
	simulated *time.Time
}

// NewTimeService создает новый экземпляр TimeService
func NewTimeService(clock ports.Clock) *TimeService {
	return &TimeService{clock: clock}
}

// Now возвращает текущее время
func (s *TimeService) Now() time.Time {
	return s.clock.Now()
}

// SetSimulated задаёт имитируемое текущее время; пустая строка отключает имитацию
func (s *TimeService) SetSimulated(val string) error {
	if val == "" {
		s.simulated = nil
		return nil
	}
	t, err := ParseSimulated(val)
	if err != nil {
		return err
	}
	s.simulated = &t
	return nil
}

// Simulated возвращает имитируемое время, если оно задано
func (s *TimeService) Simulated() (time.Time, bool) {
	if s.simulated == nil {
		return time.Time{}, false
	}
	return *s.simulated, true
}

// FormatISO форматирует время в ISO-8601
func FormatISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseSimulated разбирает строку имитируемого времени
func ParseSimulated(val string) (time.Time, error) {
	for _, layout := range simulatedLayouts {
		if t, err := time.ParseInLocation(layout, val, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time: unsupported simulated time %q", val)
}

// ManualClock управляемые часы: Sleep сдвигает время мгновенно.
// OnSleep, если задан, вызывается после каждого сдвига.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	OnSleep func(now time.Time)
}

// NewManualClock создает часы, стоящие на start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	if c.OnSleep != nil {
		c.OnSleep(now)
	}
}

// Advance сдвигает время без вызова OnSleep
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
