package terminal

import (
	"context"
	"time"

	"attendterm/internal/domain/models"
	"attendterm/internal/domain/ports"
	"attendterm/pkg/attendclient"
)

const (
	DefaultResetWindow = 8 * time.Second
	DefaultResultHold  = 2 * time.Second
)

// Session операции с модулем отпечатков
type Session interface {
	Enroll(ctx context.Context) (int, error)
	Identify(ctx context.Context) (models.Match, error)
	EraseAll(ctx context.Context) error
}

// Input события кнопки
type Input interface {
	Poll() models.Event
	Wait(ctx context.Context) (models.Event, error)
	WaitUntil(ctx context.Context, deadline time.Time) (models.Event, error)
}

// Screen дисплей с подавлением повторной записи того же экрана
type Screen interface {
	Show(line1, line2 string) error
	Message(msg string) error
}

// Config параметры автомата режимов
type Config struct {
	ResetWindow time.Duration // Окно подтверждения сброса
	ResultHold  time.Duration // Сколько держать результат на экране
}

// Terminal автомат режимов: меню и четыре режима, выходящие в меню по долгому нажатию
type Terminal struct {
	session  Session
	reporter attendclient.Client
	input    Input
	screen   Screen
	clock    ports.Clock
	cfg      Config
	log      ports.Logger

	mode   models.Mode
	cursor int
}

// New создает автомат в состоянии меню с курсором на первом режиме
func New(session Session, reporter attendclient.Client, input Input, screen Screen, clock ports.Clock, cfg Config, log ports.Logger) *Terminal {
	if cfg.ResetWindow <= 0 {
		cfg.ResetWindow = DefaultResetWindow
	}
	if cfg.ResultHold <= 0 {
		cfg.ResultHold = DefaultResultHold
	}
	return &Terminal{
		session:  session,
		reporter: reporter,
		input:    input,
		screen:   screen,
		clock:    clock,
		cfg:      cfg,
		log:      log.With("component", "terminal"),
	}
}

// Cursor режим под курсором меню
func (t *Terminal) Cursor() models.Mode {
	return models.Modes[t.cursor]
}

// Run крутит меню до отмены ctx. Контекст проверяется только между блокирующими операциями.
func (t *Terminal) Run(ctx context.Context) error {
	t.log.Info("terminal started")
	for {
		t.showMenu()
		ev, err := t.input.Wait(ctx)
		if err != nil {
			t.log.Info("terminal stopped")
			return nil
		}
		switch ev {
		case models.EventNext:
			t.cursor = (t.cursor + 1) % len(models.Modes)
		case models.EventSelect:
			t.enter(ctx, t.Cursor())
		}
	}
}

func (t *Terminal) enter(ctx context.Context, m models.Mode) {
	t.mode = m
	t.log.Info("mode entered", "mode", m)
	switch m {
	case models.ModeAttendance:
		t.loop(ctx, t.attendanceOnce)
	case models.ModeEnroll:
		t.loop(ctx, t.enrollOnce)
	case models.ModeSearch:
		t.loop(ctx, t.searchOnce)
	case models.ModeReset:
		t.reset(ctx)
	}
	t.log.Info("mode left", "mode", m)
}

// loop повторяет операцию режима, пока она не сообщит о выходе
// или пока в начале итерации не придёт долгое нажатие
func (t *Terminal) loop(ctx context.Context, once func(context.Context) bool) {
	for ctx.Err() == nil {
		if t.input.Poll() == models.EventSelect {
			return
		}
		if !once(ctx) {
			return
		}
	}
}

func (t *Terminal) showMenu() {
	t.show("Select mode:", "> "+t.Cursor().String())
}

// hold оставляет результат на экране; кнопка в это время не опрашивается
func (t *Terminal) hold() {
	t.clock.Sleep(t.cfg.ResultHold)
}

func (t *Terminal) show(line1, line2 string) {
	if err := t.screen.Show(line1, line2); err != nil {
		t.log.Warn("display write failed", "err", err)
	}
}

func (t *Terminal) message(msg string) {
	if err := t.screen.Message(msg); err != nil {
		t.log.Warn("display write failed", "err", err)
	}
}
