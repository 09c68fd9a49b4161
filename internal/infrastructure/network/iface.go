package network

import (
	"context"
	"net"
	"time"
)

// InterfaceMonitor считает сеть доступной, если есть поднятый не-loopback
// интерфейс с глобальным unicast-адресом. Если Name задан, проверяется только он.
type InterfaceMonitor struct {
	Name         string
	PollInterval time.Duration

	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

// NewInterfaceMonitor создает монитор для интерфейса name (пустое имя означает любой)
func NewInterfaceMonitor(name string) *InterfaceMonitor {
	return &InterfaceMonitor{
		Name:         name,
		PollInterval: 500 * time.Millisecond,
		interfaces:   net.Interfaces,
		addrs:        func(i net.Interface) ([]net.Addr, error) { return i.Addrs() },
	}
}

// Connected проверяет наличие адреса на подходящем интерфейсе
func (m *InterfaceMonitor) Connected() bool {
	ifaces, err := m.interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if m.Name != "" && iface.Name != m.Name {
			continue
		}
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := m.addrs(iface)
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.IsGlobalUnicast() {
				return true
			}
		}
	}
	return false
}

// WaitConnected опрашивает интерфейсы, пока не появится адрес или не истечёт timeout
func (m *InterfaceMonitor) WaitConnected(ctx context.Context, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if m.Connected() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(m.PollInterval):
		}
	}
}

// Static фиксированное состояние сети для эмулятора и тестов
type Static bool

func (s Static) Connected() bool { return bool(s) }

func (s Static) WaitConnected(ctx context.Context, timeout time.Duration) bool { return bool(s) }
