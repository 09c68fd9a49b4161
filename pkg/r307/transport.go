package r307

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	header0       = 0xEF
	header1       = 0x01
	frameOverhead = 9 // header(2) + addr(4) + pid(1) + len(2)
	maxPayload    = 256
)

// Config определяет параметры подключения к модулю.
type Config struct {
	PortName string           `json:"portName"`           // Имя UART-порта (/dev/ttyS0, COM3)
	BaudRate int              `json:"baudRate,omitempty"` // Скорость порта
	Address  uint32           `json:"address,omitempty"`  // Адрес модуля
	Password uint32           `json:"password,omitempty"` // Пароль рукопожатия
	Timeout  int              `json:"timeout,omitempty"`  // Таймаут ответа, мс
	Logger   func(msg string) `json:"-"`
}

// Transport инкапсулирует обмен пакетами с модулем по UART
type Transport struct {
	config Config
	mu     sync.Mutex
	port   io.ReadWriteCloser
	fixed  bool // порт передан снаружи, переподключение невозможно
	open   func(Config) (io.ReadWriteCloser, error)
}

// NewTransport создаёт транспорт, открывающий порт по config.PortName
func NewTransport(config Config) *Transport {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.BaudRate == 0 {
		config.BaudRate = DefaultBaudRate
	}
	if config.Address == 0 {
		config.Address = DefaultAddress
	}
	return &Transport{config: config, open: openSerial}
}

// NewTransportWithPort создаёт транспорт поверх уже открытого потока (для тестов и эмуляторов)
func NewTransportWithPort(config Config, port io.ReadWriteCloser) *Transport {
	t := NewTransport(config)
	t.port = port
	t.fixed = true
	return t
}

// Connect открывает порт
func (t *Transport) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connectLocked()
}

// connectLocked открывает порт (только под мьютексом)
func (t *Transport) connectLocked() error {
	if t.port != nil {
		return nil
	}
	if t.fixed {
		return ErrPortClosed
	}
	port, err := t.open(t.config)
	if err != nil {
		return err
	}
	t.port = port
	return nil
}

// openSerial открывает UART-порт модуля
func openSerial(config Config) (io.ReadWriteCloser, error) {
	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(config.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("r307: open %s: %w", config.PortName, err)
	}
	// Короткий таймаут чтения, общий таймаут ответа считаем сами
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("r307: set read timeout: %w", err)
	}
	return port, nil
}

// drainLocked сбрасывает входной буфер порта, чтобы опоздавший ответ
// на прошлую попытку не был принят за ответ на повтор
func (t *Transport) drainLocked() {
	if r, ok := t.port.(interface{ ResetInputBuffer() error }); ok {
		if err := r.ResetInputBuffer(); err != nil {
			t.logf("UART input reset failed: %v", err)
		}
	}
}

// Disconnect закрывает порт
func (t *Transport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disconnectLocked()
}

func (t *Transport) disconnectLocked() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

// Exchange отправляет командный пакет и возвращает полезную нагрузку пакета подтверждения.
// При ошибке ввода-вывода порт переоткрывается и команда повторяется один раз,
// кроме команд, меняющих библиотеку шаблонов: их повтор мог бы выполнить действие дважды.
func (t *Transport) Exchange(payload []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempts := 2
	if t.fixed || !repeatable(payload) {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if t.port == nil {
			if err := t.connectLocked(); err != nil {
				lastErr = err
				continue
			}
		}
		if i > 0 {
			t.drainLocked()
		}

		resp, err := t.performExchange(payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if i < attempts-1 {
			t.logf("UART error (%v). Retrying...", err)
			t.disconnectLocked()
			time.Sleep(200 * time.Millisecond)
		}
	}
	return nil, lastErr
}

// repeatable сообщает, можно ли безопасно повторить команду
func repeatable(payload []byte) bool {
	if len(payload) == 0 {
		return true
	}
	switch payload[0] {
	case insStore, insDeleteChar, insEmpty:
		return false
	}
	return true
}

// performExchange физическая отправка и приём (только под мьютексом)
func (t *Transport) performExchange(payload []byte) ([]byte, error) {
	packet, err := EncodePacket(t.config.Address, pidCommand, payload)
	if err != nil {
		return nil, err
	}
	t.logf(">> TX: % X", packet)

	if _, err := t.port.Write(packet); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(time.Duration(t.config.Timeout) * time.Millisecond)
	pid, addr, body, err := ReadPacket(&deadlineReader{r: t.port, deadline: deadline})
	if err != nil {
		return nil, err
	}
	t.logf("<< RX: pid=%02X % X", pid, body)

	if addr != t.config.Address && t.config.Address != DefaultAddress {
		return nil, ErrBadAddress
	}
	if pid != pidAck {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnexpectedPID, pid)
	}
	return body, nil
}

func (t *Transport) logf(format string, args ...interface{}) {
	if t.config.Logger != nil {
		t.config.Logger(fmt.Sprintf(format, args...))
	}
}

// EncodePacket собирает кадр протокола
func EncodePacket(addr uint32, pid byte, payload []byte) ([]byte, error) {
	if len(payload) > maxPayload {
		return nil, ErrPayloadTooLong
	}
	length := uint16(len(payload) + 2)

	packet := make([]byte, 0, frameOverhead+len(payload)+2)
	packet = append(packet, header0, header1)
	packet = binary.BigEndian.AppendUint32(packet, addr)
	packet = append(packet, pid)
	packet = binary.BigEndian.AppendUint16(packet, length)
	packet = append(packet, payload...)
	packet = binary.BigEndian.AppendUint16(packet, checksum(pid, length, payload))
	return packet, nil
}

// ReadPacket читает один кадр и проверяет заголовок и контрольную сумму
func ReadPacket(r io.Reader) (pid byte, addr uint32, payload []byte, err error) {
	head := make([]byte, frameOverhead)
	if _, err = io.ReadFull(r, head); err != nil {
		return 0, 0, nil, err
	}
	if head[0] != header0 || head[1] != header1 {
		return 0, 0, nil, ErrBadHeader
	}
	addr = binary.BigEndian.Uint32(head[2:6])
	pid = head[6]
	length := binary.BigEndian.Uint16(head[7:9])
	if length < 2 || int(length) > maxPayload+2 {
		return 0, 0, nil, ErrShortResponse
	}

	rest := make([]byte, length)
	if _, err = io.ReadFull(r, rest); err != nil {
		return 0, 0, nil, err
	}
	payload = rest[:length-2]
	sum := binary.BigEndian.Uint16(rest[length-2:])
	if sum != checksum(pid, length, payload) {
		return 0, 0, nil, ErrChecksum
	}
	return pid, addr, payload, nil
}

func checksum(pid byte, length uint16, payload []byte) uint16 {
	sum := uint16(pid) + (length >> 8) + (length & 0xFF)
	for _, b := range payload {
		sum += uint16(b)
	}
	return sum
}

// deadlineReader превращает нулевые чтения (таймаут порта) в ErrTimeout по истечении срока
type deadlineReader struct {
	r        io.Reader
	deadline time.Time
}

func (d *deadlineReader) Read(p []byte) (int, error) {
	for {
		n, err := d.r.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
		if time.Now().After(d.deadline) {
			return 0, ErrTimeout
		}
	}
}
