package ocr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/certkit/copyright-extractor/internal/common"
)

// Engine names the OCR backend used for image recognition.
type Engine string

const (
	EngineAuto      Engine = "auto"
	EngineTesseract Engine = "tesseract" // tesseract CLI through the Runner
	EngineNative    Engine = "native"    // in-process gosseract client
)

// Capabilities declares which backends this process can actually use.
type Capabilities struct {
	CLI    bool // tesseract binary resolvable on PATH
	Native bool // gosseract library linked in and initializable
}

// DetectCapabilities probes the environment for usable backends.
func DetectCapabilities(tesseractBin string) Capabilities {
	caps := Capabilities{Native: nativeAvailable()}
	if _, err := exec.LookPath(tesseractBin); err == nil {
		caps.CLI = true
	}
	return caps
}

// SelectEngine resolves the preferred engine against declared capabilities.
// Pure function: auto prefers the native client for Chinese language hints
// (better accuracy on dense CJK text), then falls back to whatever is
// available. No usable backend is a dependency failure, not a data failure.
func SelectEngine(preferred Engine, lang string, caps Capabilities) (Engine, error) {
	switch preferred {
	case EngineAuto, "":
		if caps.Native && strings.Contains(strings.ToLower(lang), "chi") {
			return EngineNative, nil
		}
		if caps.CLI {
			return EngineTesseract, nil
		}
		if caps.Native {
			return EngineNative, nil
		}
		return "", fmt.Errorf("no OCR engine available, install tesseract with the chi_sim language pack: %w", common.ErrDependency)
	case EngineTesseract:
		if !caps.CLI {
			return "", fmt.Errorf("tesseract binary not found on PATH: %w", common.ErrDependency)
		}
		return EngineTesseract, nil
	case EngineNative:
		if !caps.Native {
			return "", fmt.Errorf("native tesseract library not available: %w", common.ErrDependency)
		}
		return EngineNative, nil
	default:
		return "", fmt.Errorf("unknown OCR engine %q: %w", preferred, common.ErrDependency)
	}
}

// CheckDependencies verifies the configured engine can run and warns when the
// Chinese language pack looks absent.
func (e *Extractor) CheckDependencies(ctx context.Context) error {
	engine, err := SelectEngine(Engine(e.cfg.Engine), e.cfg.Language, DetectCapabilities(e.cfg.Tesseract))
	if err != nil {
		return err
	}
	if engine == EngineTesseract {
		out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, "--list-langs")
		if err != nil {
			return fmt.Errorf("tesseract --list-langs: %v: %w", err, common.ErrDependency)
		}
		if !strings.Contains(string(out), e.cfg.Language) {
			e.logger.Warn("tesseract language pack not listed", "lang", e.cfg.Language)
		}
	}
	return nil
}
