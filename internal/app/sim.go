package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"attendterm/internal/config"
	"attendterm/internal/domain/ports"
	"attendterm/internal/infrastructure/display"
	"attendterm/internal/infrastructure/gpio"
	"attendterm/internal/infrastructure/network"
	"attendterm/internal/infrastructure/sensor"
)

// Длительности нажатий, которые эмулятор подставляет для клавиш
const (
	SimShortPress = 150 * time.Millisecond
	SimLongPress  = 1500 * time.Millisecond
)

// SimCapacity ёмкость эмулируемого модуля, если sensor.capacity не задан (как у R307)
const SimCapacity = 999

// Simulator эмулированная периферия, управляемая текстовыми командами
type Simulator struct {
	Sensor *sensor.Fake
	Pin    *gpio.VirtualPin
	log    ports.Logger
}

// SimHardware собирает периферию без железа: модуль в памяти, виртуальную кнопку
// и консольный дисплей. online задаёт состояние сети.
func SimHardware(cfg *config.Config, out io.Writer, clock ports.Clock, online bool, log ports.Logger) (*Hardware, *Simulator) {
	capacity := cfg.Sensor.Capacity
	if capacity == 0 {
		capacity = SimCapacity
	}
	sim := &Simulator{
		Sensor: sensor.NewFake(capacity),
		Pin:    gpio.NewVirtualPin(clock),
		log:    log.With("component", "sim"),
	}
	hw := &Hardware{
		Sensor:       sim.Sensor,
		Pin:          sim.Pin,
		Display:      display.NewConsole(out, cfg.Display.Width),
		Connectivity: network.Static(online),
		Clock:        clock,
	}
	return hw, sim
}

// Apply выполняет одну команду:
//
//	n     короткое нажатие (Next)
//	s     долгое нажатие (Select)
//	f N   приложить палец N
//	l     убрать палец
func (s *Simulator) Apply(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	} else if len(cmd) > 1 && cmd[0] == 'f' {
		cmd, arg = "f", cmd[1:]
	}

	switch cmd {
	case "n":
		s.Pin.Press(SimShortPress)
	case "s":
		s.Pin.Press(SimLongPress)
	case "f":
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return fmt.Errorf("sim: finger id %q: want positive number", arg)
		}
		s.Sensor.PlaceFinger(id)
	case "l":
		s.Sensor.LiftFinger()
	default:
		return fmt.Errorf("sim: unknown command %q", cmd)
	}
	return nil
}

// Feed читает команды построчно до конца потока или отмены ctx
func (s *Simulator) Feed(ctx context.Context, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if err := s.Apply(scanner.Text()); err != nil {
			s.log.Warn("bad command", "err", err)
		}
	}
}
