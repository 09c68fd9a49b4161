package sensor

import (
	"context"

	"attendterm/internal/domain/models"
	"attendterm/pkg/r307"
)

// R307Adapter адаптирует клиент r307.Client к интерфейсу ports.Sensor.
// Номер слота совпадает с номером страницы библиотеки модуля; страница 0 не используется.
type R307Adapter struct {
	client      r307.Client
	limit       int // Ограничение слотов из конфигурации; 0 означает без ограничения
	librarySize int // Число страниц библиотеки, читается при рукопожатии
}

// NewR307Adapter создает адаптер. limit ограничивает наибольший номер слота сверху;
// больше, чем позволяет библиотека модуля, он всё равно не станет.
func NewR307Adapter(client r307.Client, limit int) *R307Adapter {
	return &R307Adapter{client: client, limit: limit}
}

// Handshake проверяет пароль модуля и читает размер библиотеки.
func (a *R307Adapter) Handshake(ctx context.Context) error {
	if err := a.client.VerifyPassword(ctx); err != nil {
		return MapError("handshake", err)
	}
	params, err := a.client.ReadSystemParameters(ctx)
	if err != nil {
		return MapError("read parameters", err)
	}
	a.librarySize = int(params.LibrarySize)
	return nil
}

// Capacity возвращает наибольший допустимый номер слота: размер библиотеки минус
// неиспользуемая страница 0, урезанный до ограничения из конфигурации.
// До рукопожатия возвращает 0.
func (a *R307Adapter) Capacity() int {
	if a.librarySize <= 1 {
		return 0
	}
	top := a.librarySize - 1
	if a.limit > 0 && a.limit < top {
		return a.limit
	}
	return top
}

func (a *R307Adapter) TemplateCount(ctx context.Context) (int, error) {
	n, err := a.client.TemplateCount(ctx)
	return n, MapError("template count", err)
}

func (a *R307Adapter) CaptureImage(ctx context.Context) error {
	return MapError("capture", a.client.GenImg(ctx))
}

func (a *R307Adapter) ExtractFeatures(ctx context.Context, buffer int) error {
	return MapError("extract", a.client.Img2Tz(ctx, byte(buffer)))
}

func (a *R307Adapter) CreateModel(ctx context.Context) error {
	return MapError("create model", a.client.RegModel(ctx))
}

func (a *R307Adapter) StoreModel(ctx context.Context, slot int) error {
	return MapError("store", a.client.Store(ctx, r307.CharBuffer1, uint16(slot)))
}

func (a *R307Adapter) DeleteModel(ctx context.Context, slot int) error {
	return MapError("delete", a.client.DeleteTemplates(ctx, uint16(slot), 1))
}

func (a *R307Adapter) Search(ctx context.Context) (models.Match, error) {
	res, err := a.client.HighSpeedSearch(ctx, r307.CharBuffer1, 0, uint16(a.librarySize))
	if err != nil {
		return models.Match{}, MapError("search", err)
	}
	return models.Match{Slot: int(res.PageID), Score: int(res.Score)}, nil
}

func (a *R307Adapter) EraseAll(ctx context.Context) error {
	return MapError("erase", a.client.Empty(ctx))
}
