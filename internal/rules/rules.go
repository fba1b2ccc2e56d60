package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Substitution is one exact-substring OCR correction, applied in order.
type Substitution struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NameFallback tunes the batch driver's filename fallback for the software
// name on image inputs. The defaults are empirical thresholds observed from
// real OCR failures; treat them as configuration, not derived values.
type NameFallback struct {
	MinNameLength int      `json:"min_name_length"`
	LabelKeywords []string `json:"label_keywords"`
}

// Rules bundles the tunable parts of cleaning and the name fallback.
type Rules struct {
	Substitutions []Substitution `json:"substitutions"`
	NameFallback  NameFallback   `json:"name_fallback"`
}

// Default returns the built-in rule set: the known OCR glyph confusions for
// certificate text and the fallback thresholds.
func Default() *Rules {
	return &Rules{
		Substitutions: []Substitution{
			{From: "基浮", To: "悬浮"},
			{From: "折又", To: "折叠"},
			{From: "钦件", To: "软件"},
			{From: "重法", To: "方法"},
		},
		NameFallback: NameFallback{
			MinNameLength: 4,
			LabelKeywords: []string{"著作权人", "软件名称", "登记号"},
		},
	}
}

// LoadFile reads a JSON rules file, validates it against the rules schema and
// merges it over the defaults. Fields absent from the file keep their
// built-in values.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a JSON rules document.
func Parse(data []byte) (*Rules, error) {
	if err := ValidateJSONAgainstSchema(buildRulesSchema(), data); err != nil {
		return nil, fmt.Errorf("rules file: %w", err)
	}

	r := Default()
	var overlay struct {
		Substitutions []Substitution `json:"substitutions"`
		NameFallback  *NameFallback  `json:"name_fallback"`
	}
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("decode rules file: %w", err)
	}
	if overlay.Substitutions != nil {
		r.Substitutions = overlay.Substitutions
	}
	if overlay.NameFallback != nil {
		if overlay.NameFallback.MinNameLength > 0 {
			r.NameFallback.MinNameLength = overlay.NameFallback.MinNameLength
		}
		if overlay.NameFallback.LabelKeywords != nil {
			r.NameFallback.LabelKeywords = overlay.NameFallback.LabelKeywords
		}
	}
	return r, nil
}

// Load returns the defaults when path is empty, otherwise LoadFile.
func Load(path string) (*Rules, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
