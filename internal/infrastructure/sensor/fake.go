package sensor

import (
	"context"
	"sort"
	"sync"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
	"attendterm/pkg/r307"
)

// Fake эмулирует модуль отпечатков в памяти. Палец задаётся номером (0 означает, что пальца нет):
// вручную через PlaceFinger/LiftFinger или сценарием Script, где каждый снимок
// изображения потребляет один элемент сценария.
type Fake struct {
	mu       sync.Mutex
	capacity int
	finger   int
	script   []int
	image    int
	buffers  [3]int
	model    int
	library  map[int]int
	failures map[string]byte

	// Calls журнал вызванных команд
	Calls []string
}

// NewFake создает эмулятор с библиотекой на capacity слотов.
func NewFake(capacity int) *Fake {
	return &Fake{
		capacity: capacity,
		library:  make(map[int]int),
		failures: make(map[string]byte),
	}
}

// PlaceFinger прикладывает палец с номером id.
func (f *Fake) PlaceFinger(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finger = id
}

// LiftFinger убирает палец.
func (f *Fake) LiftFinger() {
	f.PlaceFinger(0)
}

// Script задаёт последовательность пальцев для следующих снимков.
func (f *Fake) Script(fingers ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, fingers...)
}

// ClearScript отбрасывает неиспользованный остаток сценария.
func (f *Fake) ClearScript() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = nil
}

// FailNext заставляет следующий вызов op вернуть код модуля code.
// op: capture, extract, create model, store, delete, search, erase.
func (f *Fake) FailNext(op string, code byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = code
}

// Slots возвращает занятые слоты по возрастанию.
func (f *Fake) Slots() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots := make([]int, 0, len(f.library))
	for s := range f.library {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	return slots
}

func (f *Fake) injected(op string) error {
	f.Calls = append(f.Calls, op)
	if code, ok := f.failures[op]; ok {
		delete(f.failures, op)
		return MapError(op, &r307.ConfirmError{Code: code})
	}
	return nil
}

func (f *Fake) Handshake(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.injected("handshake")
}

func (f *Fake) Capacity() int {
	return f.capacity
}

func (f *Fake) TemplateCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.library), nil
}

func (f *Fake) CaptureImage(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("capture"); err != nil {
		return err
	}

	finger := f.finger
	if len(f.script) > 0 {
		finger = f.script[0]
		f.script = f.script[1:]
	}
	if finger == 0 {
		return ports.ErrNoFinger
	}
	f.image = finger
	return nil
}

func (f *Fake) ExtractFeatures(ctx context.Context, buffer int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("extract"); err != nil {
		return err
	}
	if f.image == 0 {
		return MapError("extract", r307.ErrInvalidImage)
	}
	f.buffers[buffer] = f.image
	return nil
}

func (f *Fake) CreateModel(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("create model"); err != nil {
		return err
	}
	if f.buffers[1] == 0 || f.buffers[1] != f.buffers[2] {
		return MapError("create model", r307.ErrCombineFail)
	}
	f.model = f.buffers[1]
	return nil
}

func (f *Fake) StoreModel(ctx context.Context, slot int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("store"); err != nil {
		return err
	}
	if slot < 1 || slot > f.capacity {
		return MapError("store", r307.ErrBadLocation)
	}
	f.library[slot] = f.model
	return nil
}

func (f *Fake) DeleteModel(ctx context.Context, slot int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("delete"); err != nil {
		return err
	}
	delete(f.library, slot)
	return nil
}

func (f *Fake) Search(ctx context.Context) (models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("search"); err != nil {
		return models.Match{}, err
	}
	best := 0
	for slot, finger := range f.library {
		if finger == f.buffers[1] && (best == 0 || slot < best) {
			best = slot
		}
	}
	if best == 0 {
		return models.Match{}, ports.ErrNoMatch
	}
	return models.Match{Slot: best, Score: 150}, nil
}

func (f *Fake) EraseAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("erase"); err != nil {
		return err
	}
	f.library = make(map[int]int)
	return nil
}
