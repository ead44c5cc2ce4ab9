package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidImage = errors.New("недопустимое изображение")

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

func (i *Image) Size() int64 {
	return int64(len(i.Data))
}

// ReadImage reads at most maxSize bytes and checks the content type by
// sniffing the data, not by trusting the file name.
func ReadImage(r io.Reader, maxSize int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: пустой файл", ErrInvalidImage)
	}

	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: размер файла превышает %s", ErrInvalidImage, humanize.IBytes(uint64(maxSize)))
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedImageTypes...) {
		return nil, fmt.Errorf("%w: тип %s не поддерживается", ErrInvalidImage, mime.String())
	}

	return &Image{
		Data:        data,
		ContentType: mime.String(),
		Extension:   mime.Extension(),
	}, nil
}
