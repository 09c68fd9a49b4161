package r307

import (
	"context"
	"encoding/binary"
	"fmt"
)

// Client определяет набор команд модуля, используемый терминалом
type Client interface {
	// Connect открывает порт
	Connect() error
	// Disconnect закрывает порт
	Disconnect() error

	// VerifyPassword выполняет рукопожатие с модулем (VfyPwd)
	VerifyPassword(ctx context.Context) error
	// ReadSystemParameters читает системные параметры (ReadSysPara)
	ReadSystemParameters(ctx context.Context) (*SystemParameters, error)
	// TemplateCount возвращает количество шаблонов в библиотеке (TempleteNum)
	TemplateCount(ctx context.Context) (int, error)

	// GenImg снимает изображение пальца в буфер изображения
	GenImg(ctx context.Context) error
	// Img2Tz извлекает признаки из изображения в буфер признаков
	Img2Tz(ctx context.Context, buffer byte) error
	// RegModel объединяет буферы 1 и 2 в шаблон
	RegModel(ctx context.Context) error
	// Store сохраняет шаблон из буфера в библиотеку по номеру страницы
	Store(ctx context.Context, buffer byte, page uint16) error
	// DeleteTemplates удаляет count шаблонов начиная с page
	DeleteTemplates(ctx context.Context, page uint16, count uint16) error
	// Empty очищает всю библиотеку шаблонов
	Empty(ctx context.Context) error
	// HighSpeedSearch ищет признаки из буфера в диапазоне страниц библиотеки
	HighSpeedSearch(ctx context.Context, buffer byte, start, count uint16) (*SearchResult, error)
}

type r307Client struct {
	transport *Transport
	config    Config
}

// NewClient создаёт клиент с UART-транспортом
func NewClient(config Config) Client {
	transport := NewTransport(config)
	return &r307Client{transport: transport, config: transport.config}
}

// NewClientWithTransport создаёт клиент с заданным транспортом (для тестов)
func NewClientWithTransport(transport *Transport) Client {
	return &r307Client{transport: transport, config: transport.config}
}

func (c *r307Client) Connect() error {
	return c.transport.Connect()
}

func (c *r307Client) Disconnect() error {
	return c.transport.Disconnect()
}

// command отправляет инструкцию и разбирает код подтверждения
func (c *r307Client) command(ctx context.Context, payload ...byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ack, err := c.transport.Exchange(payload)
	if err != nil {
		return nil, fmt.Errorf("r307: instruction 0x%02X: %w", payload[0], err)
	}
	if len(ack) < 1 {
		return nil, ErrShortResponse
	}
	if ack[0] != CodeOK {
		return nil, &ConfirmError{Code: ack[0]}
	}
	return ack[1:], nil
}

func (c *r307Client) VerifyPassword(ctx context.Context) error {
	payload := binary.BigEndian.AppendUint32([]byte{insVerifyPassword}, c.config.Password)
	_, err := c.command(ctx, payload...)
	return err
}

func (c *r307Client) ReadSystemParameters(ctx context.Context) (*SystemParameters, error) {
	data, err := c.command(ctx, insReadSysPara)
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, ErrShortResponse
	}
	return &SystemParameters{
		StatusRegister: binary.BigEndian.Uint16(data[0:2]),
		SystemID:       binary.BigEndian.Uint16(data[2:4]),
		LibrarySize:    binary.BigEndian.Uint16(data[4:6]),
		SecurityLevel:  binary.BigEndian.Uint16(data[6:8]),
		DeviceAddress:  binary.BigEndian.Uint32(data[8:12]),
		PacketSize:     binary.BigEndian.Uint16(data[12:14]),
		BaudMultiplier: binary.BigEndian.Uint16(data[14:16]),
	}, nil
}

func (c *r307Client) TemplateCount(ctx context.Context) (int, error) {
	data, err := c.command(ctx, insTemplateNum)
	if err != nil {
		return 0, err
	}
	if len(data) < 2 {
		return 0, ErrShortResponse
	}
	return int(binary.BigEndian.Uint16(data)), nil
}

func (c *r307Client) GenImg(ctx context.Context) error {
	_, err := c.command(ctx, insGenImg)
	return err
}

func (c *r307Client) Img2Tz(ctx context.Context, buffer byte) error {
	_, err := c.command(ctx, insImg2Tz, buffer)
	return err
}

func (c *r307Client) RegModel(ctx context.Context) error {
	_, err := c.command(ctx, insRegModel)
	return err
}

func (c *r307Client) Store(ctx context.Context, buffer byte, page uint16) error {
	payload := binary.BigEndian.AppendUint16([]byte{insStore, buffer}, page)
	_, err := c.command(ctx, payload...)
	return err
}

func (c *r307Client) DeleteTemplates(ctx context.Context, page uint16, count uint16) error {
	payload := binary.BigEndian.AppendUint16([]byte{insDeleteChar}, page)
	payload = binary.BigEndian.AppendUint16(payload, count)
	_, err := c.command(ctx, payload...)
	return err
}

func (c *r307Client) Empty(ctx context.Context) error {
	_, err := c.command(ctx, insEmpty)
	return err
}

func (c *r307Client) HighSpeedSearch(ctx context.Context, buffer byte, start, count uint16) (*SearchResult, error) {
	payload := binary.BigEndian.AppendUint16([]byte{insHighSpeedSearch, buffer}, start)
	payload = binary.BigEndian.AppendUint16(payload, count)
	data, err := c.command(ctx, payload...)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, ErrShortResponse
	}
	return &SearchResult{
		PageID: binary.BigEndian.Uint16(data[0:2]),
		Score:  binary.BigEndian.Uint16(data[2:4]),
	}, nil
}
