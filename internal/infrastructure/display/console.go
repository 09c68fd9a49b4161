package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console выводит содержимое двухстрочного дисплея в текстовый поток
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	width int
}

// NewConsole создает консольный дисплей шириной width символов
func NewConsole(out io.Writer, width int) *Console {
	return &Console{out: out, width: width}
}

func (c *Console) Width() int { return c.width }

func (c *Console) Show(line1, line2 string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	border := "+" + strings.Repeat("-", c.width) + "+"
	_, err := fmt.Fprintf(c.out, "%s\n|%s|\n|%s|\n%s\n",
		border, Fit(line1, c.width), Fit(line2, c.width), border)
	return err
}
