package app

import (
	"fmt"
	"io"

	"attendterm/internal/config"
	"attendterm/internal/domain/ports"
	"attendterm/internal/infrastructure/display"
	"attendterm/internal/infrastructure/gpio"
	"attendterm/internal/infrastructure/network"
	"attendterm/internal/infrastructure/sensor"
	timesvc "attendterm/internal/service/time"
	"attendterm/pkg/r307"
)

// OpenHardware открывает реальную периферию: модуль по UART, кнопку на линии GPIO-чипа,
// дисплей (консоль или LCD по UART) и монитор сетевого интерфейса.
func OpenHardware(cfg *config.Config, out io.Writer, log ports.Logger) (*Hardware, error) {
	hw := &Hardware{
		Connectivity: network.NewInterfaceMonitor(cfg.Network.Interface),
		Clock:        timesvc.SystemClock{},
	}

	sensorLog := log.With("component", "r307")
	client := r307.NewClient(r307.Config{
		PortName: cfg.Sensor.Port,
		BaudRate: cfg.Sensor.Baud,
		Address:  cfg.Sensor.Address,
		Password: cfg.Sensor.Password,
		Timeout:  int(cfg.Sensor.Timeout.Milliseconds()),
		Logger:   func(msg string) { sensorLog.Debug(msg) },
	})
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("app: open sensor port %s: %w", cfg.Sensor.Port, err)
	}
	hw.closers = append(hw.closers, client.Disconnect)
	// ёмкость уточняется по размеру библиотеки при рукопожатии
	hw.Sensor = sensor.NewR307Adapter(client, cfg.Sensor.Capacity)

	pin, err := gpio.OpenCdevPin(cfg.Button.Chip, cfg.Button.Pin, cfg.Button.ActiveLow, cfg.Button.Bias)
	if err != nil {
		hw.Close()
		return nil, err
	}
	hw.closers = append(hw.closers, pin.Close)
	hw.Pin = pin

	switch cfg.Display.Type {
	case "serlcd":
		lcd, err := display.OpenSerLCD(cfg.Display.Port, cfg.Display.Baud, cfg.Display.Width)
		if err != nil {
			hw.Close()
			return nil, err
		}
		hw.closers = append(hw.closers, lcd.Close)
		hw.Display = lcd
	default:
		hw.Display = display.NewConsole(out, cfg.Display.Width)
	}
	return hw, nil
}
