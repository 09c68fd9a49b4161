package gpio

import (
	"sync"
	"time"

	"attendterm/internal/domain/ports"
)

type window struct {
	start, end time.Time
}

// VirtualPin программная кнопка: нажатия задаются интервалами времени по часам clock.
// Используется эмулятором (клавиатура) и тестами.
type VirtualPin struct {
	mu      sync.Mutex
	clock   ports.Clock
	windows []window
}

// NewVirtualPin создает кнопку, отпущенную всё время
func NewVirtualPin(clock ports.Clock) *VirtualPin {
	return &VirtualPin{clock: clock}
}

// Press нажимает кнопку прямо сейчас на время d
func (p *VirtualPin) Press(d time.Duration) {
	p.PressAt(p.clock.Now(), d)
}

// PressAt планирует нажатие в момент start длительностью d
func (p *VirtualPin) PressAt(start time.Time, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.windows = append(p.windows, window{start: start, end: start.Add(d)})
}

// Active возвращает true, если текущее время попадает в одно из нажатий.
// Прошедшие нажатия удаляются.
func (p *VirtualPin) Active() (bool, error) {
	now := p.clock.Now()
	p.mu.Lock()
	defer p.mu.Unlock()

	active := false
	kept := p.windows[:0]
	for _, w := range p.windows {
		if !now.Before(w.end) {
			continue
		}
		kept = append(kept, w)
		if !now.Before(w.start) {
			active = true
		}
	}
	p.windows = kept
	return active, nil
}
