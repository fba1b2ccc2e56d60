package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certkit/copyright-extractor/internal/common"
)

func TestSelectEngine(t *testing.T) {
	both := Capabilities{CLI: true, Native: true}
	cliOnly := Capabilities{CLI: true}
	nativeOnly := Capabilities{Native: true}
	none := Capabilities{}

	cases := []struct {
		name      string
		preferred Engine
		lang      string
		caps      Capabilities
		want      Engine
		wantErr   bool
	}{
		{"auto chinese prefers native", EngineAuto, "chi_sim", both, EngineNative, false},
		{"auto chinese vertical prefers native", EngineAuto, "chi_tra_vert", both, EngineNative, false},
		{"auto chinese without native uses cli", EngineAuto, "chi_sim", cliOnly, EngineTesseract, false},
		{"auto latin uses cli", EngineAuto, "eng", both, EngineTesseract, false},
		{"auto latin native only", EngineAuto, "eng", nativeOnly, EngineNative, false},
		{"empty preference acts as auto", Engine(""), "chi_sim", both, EngineNative, false},
		{"auto nothing available", EngineAuto, "chi_sim", none, "", true},
		{"explicit tesseract", EngineTesseract, "chi_sim", cliOnly, EngineTesseract, false},
		{"explicit tesseract missing", EngineTesseract, "chi_sim", nativeOnly, "", true},
		{"explicit native", EngineNative, "chi_sim", nativeOnly, EngineNative, false},
		{"explicit native missing", EngineNative, "chi_sim", cliOnly, "", true},
		{"unknown engine", Engine("paddle"), "chi_sim", both, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectEngine(tc.preferred, tc.lang, tc.caps)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrDependency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
