package app

import (
	"context"
	"fmt"

	"attendterm/internal/config"
	"attendterm/internal/domain/ports"
	"attendterm/internal/infrastructure/display"
	"attendterm/internal/infrastructure/storage"
	"attendterm/internal/service/connection"
	"attendterm/internal/service/input"
	"attendterm/internal/service/registry"
	"attendterm/internal/service/session"
	"attendterm/internal/service/terminal"
	timesvc "attendterm/internal/service/time"
	"attendterm/pkg/attendclient"
)

// Hardware периферия терминала: реальная или эмулированная
type Hardware struct {
	Sensor       ports.Sensor
	Pin          ports.Pin
	Display      ports.Display
	Connectivity ports.Connectivity
	Clock        ports.Clock

	closers []func() error
}

// Close освобождает открытые порты
func (h *Hardware) Close() error {
	var first error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	h.closers = nil
	return first
}

// App собранный терминал
type App struct {
	Config   *config.Config
	Registry *registry.Registry
	Session  *session.Driver
	Terminal *terminal.Terminal

	hw     *Hardware
	screen *display.Cached
	conn   *connection.Service
	log    ports.Logger
}

// New собирает компоненты терминала. Недоступное хранилище реестра считается фатальной ошибкой.
func New(cfg *config.Config, hw *Hardware, log ports.Logger) (*App, error) {
	screen := display.NewCached(hw.Display)

	repo, err := storage.NewFileRegistryRepository(cfg.Registry.Path)
	if err != nil {
		screen.Show("Storage error", "Halted")
		return nil, fmt.Errorf("app: registry storage: %w", err)
	}
	reg := registry.Open(repo, log.With("component", "registry"))

	times := timesvc.NewTimeService(hw.Clock)
	if err := times.SetSimulated(cfg.Service.SimulatedTime); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	in := input.NewController(hw.Pin, hw.Clock, input.Config{
		PollInterval: cfg.Button.PollInterval,
		LongPress:    cfg.Button.LongPress,
	}, log.With("component", "input"))

	drv := session.NewDriver(hw.Sensor, reg, in, hw.Clock, session.Config{
		FingerPoll: cfg.Sensor.FingerPoll,
	}, log.With("component", "session"))

	clientLog := log.With("component", "attendclient")
	clientCfg := attendclient.Config{
		BaseURL:     cfg.Service.BaseURL,
		CapturePath: cfg.Service.CapturePath,
		DeletePath:  cfg.Service.DeletePath,
		DeleteToken: cfg.Service.DeleteToken,
		Timeout:     cfg.Service.Timeout,
		Logger:      func(msg string) { clientLog.Debug(msg) },
	}
	if sim, ok := times.Simulated(); ok {
		clientCfg.SimulatedTime = sim
		log.Warn("simulated service time enabled", "currentDateTime", timesvc.FormatISO(sim))
	}
	client := attendclient.New(clientCfg, hw.Connectivity)

	term := terminal.New(drv, client, in, screen, hw.Clock, terminal.Config{
		ResetWindow: cfg.Terminal.ResetWindow,
		ResultHold:  cfg.Terminal.ResultHold,
	}, log)
	drv.OnStep = term.ShowStep

	return &App{
		Config:   cfg,
		Registry: reg,
		Session:  drv,
		Terminal: term,
		hw:       hw,
		screen:   screen,
		conn:     connection.NewService(hw.Sensor, reg, log),
		log:      log,
	}, nil
}

// Boot ждёт сеть (без неё терминал работает, но отметки не уходят)
// и проверяет модуль отпечатков. Ошибка модуля фатальна.
func (a *App) Boot(ctx context.Context) error {
	a.screen.Show("Attendance", "Starting...")

	a.screen.Show("Connecting WiFi", "")
	if a.hw.Connectivity.WaitConnected(ctx, a.Config.Network.Wait) {
		a.screen.Show("WiFi connected", "")
		a.log.Info("network up")
	} else {
		a.screen.Show("No WiFi", "Offline mode")
		a.log.Warn("network not available, reports will fail", "waited", a.Config.Network.Wait)
	}

	a.screen.Show("Sensor", "Connecting...")
	st, err := a.conn.Check(ctx)
	if err != nil {
		a.screen.Show("Sensor error", "Halted")
		return err
	}
	if !st.InSync() {
		a.screen.Show("Registry differs", fmt.Sprintf("%d vs %d", st.Registered, st.Templates))
	} else {
		a.screen.Show("Sensor ready", fmt.Sprintf("%d enrolled", st.Registered))
	}
	return nil
}

// Run запускает автомат режимов до отмены ctx
func (a *App) Run(ctx context.Context) error {
	if err := a.Boot(ctx); err != nil {
		return err
	}
	return a.Terminal.Run(ctx)
}

// Close освобождает периферию
func (a *App) Close() error {
	return a.hw.Close()
}
