package input

import (
	"context"
	"time"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
)

const (
	DefaultPollInterval = 20 * time.Millisecond
	DefaultLongPress    = 1000 * time.Millisecond
)

// Config параметры опроса кнопки
type Config struct {
	PollInterval time.Duration
	LongPress    time.Duration
}

// Controller превращает уровень линии кнопки в события Next (короткое нажатие)
// и Select (долгое нажатие). Дребезг не фильтруется: длительность измеряется
// от первого активного опроса до первого неактивного.
type Controller struct {
	pin   ports.Pin
	clock ports.Clock
	cfg   Config
	log   ports.Logger
}

// NewController создает контроллер кнопки
func NewController(pin ports.Pin, clock ports.Clock, cfg Config, log ports.Logger) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.LongPress <= 0 {
		cfg.LongPress = DefaultLongPress
	}
	return &Controller{pin: pin, clock: clock, cfg: cfg, log: log}
}

// Interval возвращает период опроса
func (c *Controller) Interval() time.Duration {
	return c.cfg.PollInterval
}

// Poll проверяет линию один раз. Если кнопка нажата, блокируется до отпускания
// и классифицирует нажатие; иначе сразу возвращает EventNone.
func (c *Controller) Poll() models.Event {
	if !c.active() {
		return models.EventNone
	}
	start := c.clock.Now()
	for c.active() {
		c.clock.Sleep(c.cfg.PollInterval)
	}
	elapsed := c.clock.Now().Sub(start)

	ev := models.EventNext
	if elapsed >= c.cfg.LongPress {
		ev = models.EventSelect
	}
	c.log.Debug("button released", "held", elapsed, "event", ev)
	return ev
}

// Wait блокируется до события Next или Select
func (c *Controller) Wait(ctx context.Context) (models.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return models.EventNone, err
		}
		if ev := c.Poll(); ev != models.EventNone {
			return ev, nil
		}
		c.clock.Sleep(c.cfg.PollInterval)
	}
}

// WaitUntil ждёт событие до момента deadline; по истечении срока возвращает EventNone
func (c *Controller) WaitUntil(ctx context.Context, deadline time.Time) (models.Event, error) {
	for c.clock.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return models.EventNone, err
		}
		if ev := c.Poll(); ev != models.EventNone {
			return ev, nil
		}
		c.clock.Sleep(c.cfg.PollInterval)
	}
	return models.EventNone, nil
}

func (c *Controller) active() bool {
	on, err := c.pin.Active()
	if err != nil {
		c.log.Warn("button read failed", "err", err)
		return false
	}
	return on
}
