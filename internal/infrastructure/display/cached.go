package display

import "attendterm/internal/domain/ports"

// Cached пропускает запись экрана, если он не изменился с прошлого раза
type Cached struct {
	display ports.Display
	line1   string
	line2   string
	shown   bool
}

// NewCached оборачивает дисплей
func NewCached(d ports.Display) *Cached {
	return &Cached{display: d}
}

func (c *Cached) Width() int { return c.display.Width() }

func (c *Cached) Show(line1, line2 string) error {
	w := c.display.Width()
	line1, line2 = Fit(line1, w), Fit(line2, w)
	if c.shown && line1 == c.line1 && line2 == c.line2 {
		return nil
	}
	if err := c.display.Show(line1, line2); err != nil {
		c.shown = false
		return err
	}
	c.line1, c.line2, c.shown = line1, line2, true
	return nil
}

// Message выводит сообщение, перенося его на две строки
func (c *Cached) Message(msg string) error {
	return c.Show(Wrap(msg, c.Width()))
}
