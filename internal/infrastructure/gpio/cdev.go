package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Подтяжка линии кнопки
const (
	BiasPullUp   = "pull-up"
	BiasPullDown = "pull-down"
	BiasNone     = "none"
)

const consumer = "attendterm"

// line запрошенная линия; *gpiocdev.Line подходит
type line interface {
	Value() (int, error)
	Close() error
}

// CdevPin вход GPIO через символьное устройство /dev/gpiochipN.
// Инверсию уровня и подтяжку выполняет ядро, Value уже логическое.
type CdevPin struct {
	line line
	name string
}

// OpenCdevPin запрашивает линию offset на чипе chip (gpiochip0 или /dev/gpiochip0) как вход.
// activeLow: кнопка замыкает линию на землю при подтяжке к питанию.
func OpenCdevPin(chip string, offset int, activeLow bool, bias string) (*CdevPin, error) {
	opts, err := lineOptions(activeLow, bias)
	if err != nil {
		return nil, err
	}
	l, err := gpiocdev.RequestLine(chip, offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("gpio: request %s line %d: %w", chip, offset, err)
	}
	return newCdevPin(l, fmt.Sprintf("%s:%d", chip, offset)), nil
}

func newCdevPin(l line, name string) *CdevPin {
	return &CdevPin{line: l, name: name}
}

func lineOptions(activeLow bool, bias string) ([]gpiocdev.LineReqOption, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithConsumer(consumer)}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	switch bias {
	case BiasPullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case BiasPullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	case BiasNone:
		opts = append(opts, gpiocdev.WithBiasDisabled)
	default:
		return nil, fmt.Errorf("gpio: unknown bias %q", bias)
	}
	return opts, nil
}

// Active читает логический уровень линии
func (p *CdevPin) Active() (bool, error) {
	v, err := p.line.Value()
	if err != nil {
		return false, fmt.Errorf("gpio: read %s: %w", p.name, err)
	}
	return v == 1, nil
}

// Close освобождает линию
func (p *CdevPin) Close() error {
	return p.line.Close()
}
