package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
	"attendterm/internal/service/registry"
	timesvc "attendterm/internal/service/time"
)

var (
	// ErrAborted оператор отменил ожидание пальца долгим нажатием
	ErrAborted = errors.New("session: aborted by operator")
	// ErrLibraryFull в библиотеке модуля нет свободного слота
	ErrLibraryFull = errors.New("session: sensor library full")
	// ErrNoMatch совпадение не найдено
	ErrNoMatch = ports.ErrNoMatch
)

const DefaultFingerPoll = 100 * time.Millisecond

// Step этап регистрации, о котором сообщается оператору
type Step int

const (
	StepPlaceFinger Step = iota
	StepRemoveFinger
	StepPlaceAgain
	StepProcessing
)

// Input источник событий кнопки для точек отмены
type Input interface {
	Poll() models.Event
}

// Config параметры сессии
type Config struct {
	FingerPoll time.Duration
}

// Driver выполняет многошаговые операции модуля: регистрацию, идентификацию
// и полную очистку. Запись в реестр происходит только после успешного сохранения
// шаблона в модуле.
type Driver struct {
	sensor   ports.Sensor
	registry *registry.Registry
	input    Input
	clock    ports.Clock
	cfg      Config
	log      ports.Logger

	// OnStep вызывается при смене этапа регистрации или идентификации
	OnStep func(Step)
}

// NewDriver создает драйвер сессии
func NewDriver(sensor ports.Sensor, reg *registry.Registry, input Input, clock ports.Clock, cfg Config, log ports.Logger) *Driver {
	if cfg.FingerPoll <= 0 {
		cfg.FingerPoll = DefaultFingerPoll
	}
	return &Driver{
		sensor:   sensor,
		registry: reg,
		input:    input,
		clock:    clock,
		cfg:      cfg,
		log:      log,
	}
}

// Enroll регистрирует новый палец в слоте NextID. Возвращает номер слота
// или 0 и ошибку; при любой ошибке реестр не меняется.
func (d *Driver) Enroll(ctx context.Context) (int, error) {
	slot := d.registry.NextID()
	if slot > d.sensor.Capacity() {
		return 0, ErrLibraryFull
	}

	d.step(StepPlaceFinger)
	if err := d.waitFinger(ctx); err != nil {
		return 0, err
	}
	d.step(StepProcessing)
	if err := d.sensor.ExtractFeatures(ctx, 1); err != nil {
		return 0, err
	}

	d.step(StepRemoveFinger)
	if err := d.waitRemoval(ctx); err != nil {
		return 0, err
	}

	d.step(StepPlaceAgain)
	if err := d.waitFinger(ctx); err != nil {
		return 0, err
	}
	d.step(StepProcessing)
	if err := d.sensor.ExtractFeatures(ctx, 2); err != nil {
		return 0, err
	}
	if err := d.sensor.CreateModel(ctx); err != nil {
		return 0, err
	}
	if err := d.sensor.StoreModel(ctx, slot); err != nil {
		return 0, err
	}

	meta := "enrolled " + timesvc.FormatISO(d.clock.Now())
	if err := d.registry.Commit(slot, meta); err != nil {
		// шаблон без записи в реестре нарушил бы соответствие слотов
		if derr := d.sensor.DeleteModel(ctx, slot); derr != nil {
			d.log.Error("rollback of stored template failed", "slot", slot, "err", derr)
		}
		return 0, err
	}

	d.log.Info("finger enrolled", "slot", slot)
	return slot, nil
}

// Identify ищет приложенный палец в библиотеке модуля. Реестр и библиотека не меняются.
func (d *Driver) Identify(ctx context.Context) (models.Match, error) {
	d.step(StepPlaceFinger)
	if err := d.waitFinger(ctx); err != nil {
		return models.Match{}, err
	}
	d.step(StepProcessing)
	if err := d.sensor.ExtractFeatures(ctx, 1); err != nil {
		return models.Match{}, err
	}
	match, err := d.sensor.Search(ctx)
	if err != nil {
		return models.Match{}, err
	}
	if !d.registry.Contains(match.Slot) {
		d.log.Warn("sensor matched a slot unknown to the registry", "slot", match.Slot)
	}
	return match, nil
}

// EraseAll очищает библиотеку модуля, затем реестр. Если модуль не очищен, реестр не трогается.
func (d *Driver) EraseAll(ctx context.Context) error {
	if err := d.sensor.EraseAll(ctx); err != nil {
		return err
	}
	if err := d.registry.Reset(); err != nil {
		d.log.Error("sensor erased but registry reset failed", "err", err)
		return fmt.Errorf("session: reset registry: %w", err)
	}
	d.log.Info("all fingerprints erased")
	return nil
}

// waitFinger снимает изображения, пока палец не будет приложен.
// Долгое нажатие кнопки между попытками отменяет ожидание.
func (d *Driver) waitFinger(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.input.Poll() == models.EventSelect {
			return ErrAborted
		}
		err := d.sensor.CaptureImage(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrNoFinger) {
			return err
		}
		d.clock.Sleep(d.cfg.FingerPoll)
	}
}

// waitRemoval ждёт, пока палец не уберут. Без таймаута и без отмены кнопкой.
func (d *Driver) waitRemoval(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := d.sensor.CaptureImage(ctx)
		if errors.Is(err, ports.ErrNoFinger) {
			return nil
		}
		if err != nil {
			d.log.Debug("capture while waiting for removal", "err", err)
		}
		d.clock.Sleep(d.cfg.FingerPoll)
	}
}

func (d *Driver) step(s Step) {
	if d.OnStep != nil {
		d.OnStep(s)
	}
}
