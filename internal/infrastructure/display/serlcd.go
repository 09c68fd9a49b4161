package display

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

const (
	lcdCommand = 0xFE
	lcdClear   = 0x01
	lcdLine1   = 0x80
	lcdLine2   = 0xC0
)

// SerLCD символьный ЖК-дисплей с UART-адаптером (команды с префиксом 0xFE)
type SerLCD struct {
	port  io.WriteCloser
	width int
}

// OpenSerLCD открывает порт адаптера и очищает экран
func OpenSerLCD(portName string, baudRate int, width int) (*SerLCD, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("display: open %s: %w", portName, err)
	}
	lcd := NewSerLCD(port, width)
	if _, err := port.Write([]byte{lcdCommand, lcdClear}); err != nil {
		port.Close()
		return nil, fmt.Errorf("display: clear: %w", err)
	}
	return lcd, nil
}

// NewSerLCD создает дисплей поверх открытого потока
func NewSerLCD(port io.WriteCloser, width int) *SerLCD {
	return &SerLCD{port: port, width: width}
}

func (l *SerLCD) Width() int { return l.width }

// Show перезаписывает обе строки без очистки экрана, чтобы не мерцать
func (l *SerLCD) Show(line1, line2 string) error {
	buf := make([]byte, 0, 2*l.width+4)
	buf = append(buf, lcdCommand, lcdLine1)
	buf = append(buf, Fit(line1, l.width)...)
	buf = append(buf, lcdCommand, lcdLine2)
	buf = append(buf, Fit(line2, l.width)...)
	_, err := l.port.Write(buf)
	return err
}

// Close закрывает порт адаптера
func (l *SerLCD) Close() error {
	return l.port.Close()
}
