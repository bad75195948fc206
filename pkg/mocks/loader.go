package mocks

import (
	"context"
	"image"

	"github.com/user/promoreel/pkg/ports"
)

// ImageLoader is a mock implementation of ports.ImageLoader.
type ImageLoader struct {
	LoadFunc func(ctx context.Context, url string) (image.Image, error)

	LoadCalls []string
}

func (m *ImageLoader) Load(ctx context.Context, url string) (image.Image, error) {
	m.LoadCalls = append(m.LoadCalls, url)
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, url)
	}
	return image.NewRGBA(image.Rect(0, 0, 640, 480)), nil
}

var _ ports.ImageLoader = (*ImageLoader)(nil)
