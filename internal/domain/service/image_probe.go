package service

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo 이미지 헤더에서 읽은 정보. 이미지가 아니면 모두 zero value입니다.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// ProbeImage r의 헤더를 읽어 이미지 크기를 알아냅니다.
// 반환된 reader는 이미 읽은 헤더를 포함한 원본 전체를 다시 돌려줍니다.
func ProbeImage(r io.Reader) (ImageInfo, io.Reader) {
	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &head))
	rest := io.MultiReader(&head, r)
	if err != nil {
		return ImageInfo{}, rest
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, rest
}
