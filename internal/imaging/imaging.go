// imaging реализует кодек/трансформации изображений профиля:
// декодирование с валидацией, нормализация цветовой модели (RGB),
// кадрирование, детерминированный ресайз (Lanczos) и JPEG-кодирование.
//
// Функции чистые и безопасны для конкурентного вызова; единственное
// разделяемое состояние Processor — счётчик слотов, ограничивающий число
// одновременных CPU-трансформаций, чтобы кодек не выедал весь пул потоков
// под I/O-bound запросами.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	dimg "github.com/disintegration/imaging"
)

var (
	// ErrInvalidImage — вход не является корректным растровым изображением
	// (обрезанный файл, посторонний формат, нулевые размеры).
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidCropRegion — прямоугольник кадрирования вне границ изображения
	// или с неположительной стороной.
	ErrInvalidCropRegion = errors.New("invalid crop region")
)

// Image — нормализованное изображение (всегда NRGBA).
type Image struct {
	px *image.NRGBA
}

func (i *Image) Width() int  { return i.px.Bounds().Dx() }
func (i *Image) Height() int { return i.px.Bounds().Dy() }

// Processor — кодек с ограничением параллелизма трансформаций.
type Processor struct {
	finalSize int
	slots     chan struct{}
}

// NewProcessor создаёт Processor.
// finalSize — сторона финального квадратного изображения;
// maxParallel — число одновременных CPU-трансформаций (<=0 недопустимо,
// валидируется конфигом).
func NewProcessor(finalSize, maxParallel int) *Processor {
	return &Processor{
		finalSize: finalSize,
		slots:     make(chan struct{}, maxParallel),
	}
}

// acquire занимает слот трансформации либо возвращает ошибку контекста.
func (p *Processor) acquire(ctx context.Context) (func(), error) {
	select {
	case p.slots <- struct{}{}:
		return func() { <-p.slots }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DecodeAndValidate декодирует изображение и нормализует его в RGB (NRGBA).
// Полное декодирование служит структурной валидацией: обрезанный или
// посторонний вход отвергается до того, как размерам можно доверять.
func (p *Processor) DecodeAndValidate(ctx context.Context, raw []byte) (*Image, error) {
	const op = "imaging/DecodeAndValidate"

	release, err := p.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer release()

	decoded, err := dimg.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidImage)
	}

	// Clone всегда возвращает NRGBA — единая цветовая модель ниже по конвейеру.
	px := dimg.Clone(decoded)
	if px.Bounds().Dx() <= 0 || px.Bounds().Dy() <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidImage)
	}

	return &Image{px: px}, nil
}

// Crop вырезает прямоугольник r из img.
// Ошибки: ErrInvalidCropRegion при неположительных сторонах или выходе за границы.
func (p *Processor) Crop(img *Image, x, y, w, h int) (*Image, error) {
	const op = "imaging/Crop"

	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCropRegion)
	}

	if x < 0 || y < 0 || x+w > img.Width() || y+h > img.Height() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCropRegion)
	}

	px := dimg.Crop(img.px, image.Rect(x, y, x+w, y+h))

	return &Image{px: px}, nil
}

// Resize приводит изображение точно к finalSize×finalSize (Lanczos).
// Всегда успешен для корректного входа; соотношение сторон не сохраняется.
func (p *Processor) Resize(ctx context.Context, img *Image) (*Image, error) {
	const op = "imaging/Resize"

	release, err := p.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer release()

	px := dimg.Resize(img.px, p.finalSize, p.finalSize, dimg.Lanczos)

	return &Image{px: px}, nil
}

// Encode кодирует изображение в baseline JPEG с заданным качеством.
// Детерминирован при одинаковом входе и версии библиотеки.
func (p *Processor) Encode(ctx context.Context, img *Image, quality int) ([]byte, error) {
	const op = "imaging/Encode"

	release, err := p.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer release()

	var buf bytes.Buffer
	if err := dimg.Encode(&buf, img.px, dimg.JPEG, dimg.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}
