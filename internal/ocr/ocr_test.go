package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
)

// stubRunner dispatches on the command name so one stub can serve
// pdftotext, pdftoppm and tesseract in a single extraction.
type stubRunner struct {
	run func(name string, args []string) ([]byte, []byte, error)
}

func (s stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	return s.run(name, args)
}

// fakeNative scripts the in-process recognizer per image path.
type fakeNative struct {
	texts map[string]string // keyed by filepath.Base
	errOn string
}

func (f fakeNative) Available() bool { return true }

func (f fakeNative) Recognize(path, _, _ string) (string, error) {
	base := filepath.Base(path)
	if f.errOn != "" && base == f.errOn {
		return "", errors.New("recognizer crashed")
	}
	if txt, ok := f.texts[base]; ok {
		return txt, nil
	}
	return "", fmt.Errorf("unexpected image %s", base)
}

func newTestExtractor(cfg Config, runner Runner, native nativeClient) *Extractor {
	e := NewExtractor(cfg, testLogger())
	e.runner = runner
	e.native = native
	return e
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractImageNative(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native", Language: "chi_sim"},
		stubRunner{run: func(string, []string) ([]byte, []byte, error) {
			t.Fatal("native path must not exec anything")
			return nil, nil, nil
		}},
		fakeNative{texts: map[string]string{"cert.png": "登记号: 2023SR0345678\r\n"}})

	res, err := e.Extract(context.Background(), "/scans/cert.png")
	require.NoError(t, err)
	assert.Equal(t, constants.IMAGE, res.SourceType)
	assert.Equal(t, "image-ocr-native", res.Method)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "登记号: 2023SR0345678", res.Text)
}

func TestExtractImageTesseractCLI(t *testing.T) {
	var gotArgs []string
	e := newTestExtractor(
		// "sh" is guaranteed resolvable so capability detection passes;
		// the stub runner never execs it.
		Config{Engine: "tesseract", Language: "chi_sim", Tesseract: "sh", TessdataDir: "/opt/tessdata"},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			gotArgs = args
			return []byte("软件名称: 示例软件\n------\n"), nil, nil
		}},
		fakeNative{})

	res, err := e.Extract(context.Background(), "/scans/cert.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image-ocr", res.Method)
	assert.Equal(t, "软件名称: 示例软件", res.Text)
	assert.Equal(t, []string{"/scans/cert.jpg", "stdout", "-l", "chi_sim", "--tessdata-dir", "/opt/tessdata"}, gotArgs)
}

func TestExtractImageOCRFailure(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native"},
		stubRunner{run: func(string, []string) ([]byte, []byte, error) { return nil, nil, nil }},
		fakeNative{errOn: "cert.png"})

	_, err := e.Extract(context.Background(), "/scans/cert.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAcquisition)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native"}, stubRunner{run: nil}, fakeNative{})
	_, err := e.Extract(context.Background(), "/scans/notes.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAcquisition)
}

func TestExtractPDFTextLayer(t *testing.T) {
	layer := strings.Repeat("软件著作权登记证书正文内容 ", 5) // comfortably above the threshold
	e := newTestExtractor(Config{Engine: "native"},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			require.Contains(t, args, "-layout")
			return []byte(layer + "\f" + layer), nil, nil
		}},
		fakeNative{})

	res, err := e.Extract(context.Background(), "/scans/batch.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "--- Page 1 ---")
	assert.Contains(t, res.Text, "--- Page 2 ---")
}

func TestExtractPDFTextLayerThresholdCountsRunes(t *testing.T) {
	// 20 Chinese characters are 60 bytes but only 20 non-space characters,
	// which is below the threshold; the byte length must not fool it.
	layer := strings.Repeat("证", 20)
	e := newTestExtractor(Config{Engine: "native", Language: "chi_sim"},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			switch name {
			case "pdftotext":
				return []byte(layer), nil, nil
			case "pdftoppm":
				prefix := args[len(args)-1]
				require.NoError(t, os.WriteFile(prefix+"-1.png", []byte("png"), 0o644))
				return nil, nil, nil
			default:
				return nil, nil, fmt.Errorf("unexpected command %s", name)
			}
		}},
		fakeNative{texts: map[string]string{"page-1.png": "软件名称: 扫描版软件"}})

	res, err := e.Extract(context.Background(), "/scans/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Contains(t, res.Text, "扫描版软件")
}

func TestExtractPDFShortTextLayerFallsBackToOCR(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native", Language: "chi_sim", Pdftotext: "pdftotext", Pdftoppm: "pdftoppm"},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			switch name {
			case "pdftotext":
				return []byte("  \n"), nil, nil // scanned pdf, no text layer
			case "pdftoppm":
				prefix := args[len(args)-1]
				require.NoError(t, os.WriteFile(prefix+"-1.png", []byte("png"), 0o644))
				require.NoError(t, os.WriteFile(prefix+"-2.png", []byte("png"), 0o644))
				return nil, nil, nil
			default:
				return nil, nil, fmt.Errorf("unexpected command %s", name)
			}
		}},
		fakeNative{texts: map[string]string{
			"page-1.png": "软件名称: 第一页软件",
			"page-2.png": "软件名称: 第二页软件",
		}})

	res, err := e.Extract(context.Background(), "/scans/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "--- Page 1 ---\n软件名称: 第一页软件")
	assert.Contains(t, res.Text, "--- Page 2 ---\n软件名称: 第二页软件")
}

func TestExtractPDFPageFailurePlaceholder(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native", Language: "chi_sim"},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			switch name {
			case "pdftotext":
				return nil, nil, errors.New("no text layer")
			case "pdftoppm":
				prefix := args[len(args)-1]
				require.NoError(t, os.WriteFile(prefix+"-1.png", []byte("png"), 0o644))
				require.NoError(t, os.WriteFile(prefix+"-2.png", []byte("png"), 0o644))
				return nil, nil, nil
			default:
				return nil, nil, fmt.Errorf("unexpected command %s", name)
			}
		}},
		fakeNative{
			texts: map[string]string{"page-2.png": "软件名称: 幸存页软件"},
			errOn: "page-1.png",
		})

	res, err := e.Extract(context.Background(), "/scans/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "[OCR FAILED]")
	assert.Contains(t, res.Text, "幸存页软件")
	assert.NotEmpty(t, res.Warnings)
}

func TestExtractPDFMaxPages(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native", Language: "chi_sim", MaxPages: 1},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			switch name {
			case "pdftotext":
				return nil, nil, errors.New("no text layer")
			case "pdftoppm":
				prefix := args[len(args)-1]
				require.NoError(t, os.WriteFile(prefix+"-1.png", []byte("png"), 0o644))
				require.NoError(t, os.WriteFile(prefix+"-2.png", []byte("png"), 0o644))
				return nil, nil, nil
			default:
				return nil, nil, fmt.Errorf("unexpected command %s", name)
			}
		}},
		fakeNative{texts: map[string]string{"page-1.png": "软件名称: 首页软件"}})

	res, err := e.Extract(context.Background(), "/scans/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.NotContains(t, res.Text, "--- Page 2 ---")
}

func TestExtractPDFNoPagesRendered(t *testing.T) {
	e := newTestExtractor(Config{Engine: "native"},
		stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
			if name == "pdftotext" {
				return nil, nil, errors.New("no text layer")
			}
			return nil, nil, nil // pdftoppm succeeds but writes nothing
		}},
		fakeNative{})

	_, err := e.Extract(context.Background(), "/scans/empty.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAcquisition)
}
