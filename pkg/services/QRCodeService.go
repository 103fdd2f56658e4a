package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRCodeSize = 256
)

type QRCodeServicer interface {
	RenderPNG(link string) ([]byte, error)
}

type QRCodeServiceConfig struct {
	Size int
}

type QRCodeService struct {
	size int
}

func NewQRCodeService(config QRCodeServiceConfig) QRCodeService {
	if config.Size <= 0 {
		config.Size = DefaultQRCodeSize
	}

	return QRCodeService{
		size: config.Size,
	}
}

func (s QRCodeService) RenderPNG(link string) ([]byte, error) {
	if link == "" {
		return nil, fmt.Errorf("cannot render a QR code for an empty link")
	}

	png, err := qrcode.Encode(link, qrcode.Medium, s.size)

	if err != nil {
		return nil, fmt.Errorf("error rendering QR code for '%s': %w", link, err)
	}

	return png, nil
}
