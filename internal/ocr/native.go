package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// nativeClient abstracts the in-process tesseract binding so image
// recognition can be faked in tests without cgo.
type nativeClient interface {
	Recognize(path, lang, tessdataDir string) (string, error)
	Available() bool
}

type gosseractClient struct{}

func (gosseractClient) Available() bool { return true }

// Recognize runs the linked tesseract library on one image file. A fresh
// client per call keeps the binding state isolated; gosseract clients are
// not safe for reuse across languages.
func (gosseractClient) Recognize(path, lang, tessdataDir string) (string, error) {
	c := gosseract.NewClient()
	defer func() { _ = c.Close() }()

	if err := c.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if lang != "" {
		if err := c.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if tessdataDir != "" {
		if err := c.SetTessdataPrefix(tessdataDir); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

// nativeAvailable reports whether the gosseract binding is linked into this
// binary. The library is a build-time dependency, so this is constant.
func nativeAvailable() bool { return gosseractClient{}.Available() }
