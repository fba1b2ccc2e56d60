package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certkit/copyright-extractor/internal/entity"
	"github.com/certkit/copyright-extractor/internal/rules"
)

func TestCleanTextStripsNoise(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, "智能调度软件", c.CleanText("|智能调度软件。"))
	assert.Equal(t, "某某科技有限公司", c.CleanText("，某某科技有限公司，"))
	assert.Equal(t, "全部权利", c.CleanText(`"全部权利"`))
}

func TestCleanTextEdgePunctuation(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, "原始取得", c.CleanText("：原始取得；"))
	assert.Equal(t, "原始取得", c.CleanText("  ,原始取得:  "))
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, "企业资源管理 平台软件", c.CleanText("企业资源管理   平台软件"))
	assert.Equal(t, "甲 乙 丙", c.CleanText("甲\t乙\n丙"))
}

func TestCleanTextSubstitutions(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, "悬浮式平台软件", c.CleanText("基浮式平台软件"))
	assert.Equal(t, "折叠屏适配软件", c.CleanText("折又屏适配软件"))
	assert.Equal(t, "软件著作权", c.CleanText("钦件著作权"))
	assert.Equal(t, "控制方法", c.CleanText("控制重法"))
}

func TestCleanTextIdempotent(t *testing.T) {
	c := New(nil, nil)
	inputs := []string{
		"|基浮式,多关节。机械臂软件|",
		"：某某科技   有限公司；",
		"already clean ascii",
		"",
	}
	for _, in := range inputs {
		once := c.CleanText(in)
		assert.Equal(t, once, c.CleanText(once), "input %q", in)
	}
}

func TestCleanRecordIdentifiersSkipSubstitutions(t *testing.T) {
	// A substitution pair that could occur inside an identifier must not
	// rewrite the registration or serial number.
	r := rules.Default()
	r.Substitutions = append(r.Substitutions, rules.Substitution{From: "SR", To: "XX"})
	c := New(r, nil)

	out := c.Clean(entity.CertificateRecord{
		RegistrationNumber: " 2023SR0345678,",
		SerialNumber:       "，5678901",
		SoftwareName:       "基浮式软件",
	})
	assert.Equal(t, "2023SR0345678", out.RegistrationNumber)
	assert.Equal(t, "5678901", out.OriginalSerial)
	assert.Equal(t, "悬浮式软件", out.SoftwareName)
}

func TestCleanAllNumbersSurvivors(t *testing.T) {
	c := New(nil, nil)
	recs := []entity.CertificateRecord{
		{SoftwareName: "第一个软件", Owner: "甲公司"},
		{SoftwareName: "。，", Owner: "|"}, // cleans to nothing, dropped
		{SoftwareName: "第二个软件", Owner: "乙公司"},
		{RegistrationNumber: "2020SR111222"},
	}

	cleaned := c.CleanAll(recs)
	require.Len(t, cleaned, 3)
	for i, cr := range cleaned {
		assert.Equal(t, i+1, cr.DisplayNumber)
		assert.False(t, cr.Empty())
	}
	assert.Equal(t, "第一个软件", cleaned[0].SoftwareName)
	assert.Equal(t, "第二个软件", cleaned[1].SoftwareName)
	assert.Equal(t, "2020SR111222", cleaned[2].RegistrationNumber)
}

func TestCleanAllEmptyInput(t *testing.T) {
	c := New(nil, nil)
	assert.Empty(t, c.CleanAll(nil))
	assert.Empty(t, c.CleanAll([]entity.CertificateRecord{}))
}

func TestCleanAllOrderIsEncounterOrder(t *testing.T) {
	// OCR serial numbers never influence output numbering.
	c := New(nil, nil)
	recs := []entity.CertificateRecord{
		{SoftwareName: "乙软件", SerialNumber: "999999"},
		{SoftwareName: "甲软件", SerialNumber: "111111"},
	}
	cleaned := c.CleanAll(recs)
	require.Len(t, cleaned, 2)
	assert.Equal(t, "乙软件", cleaned[0].SoftwareName)
	assert.Equal(t, 1, cleaned[0].DisplayNumber)
	assert.Equal(t, "999999", cleaned[0].OriginalSerial)
	assert.Equal(t, "甲软件", cleaned[1].SoftwareName)
	assert.Equal(t, 2, cleaned[1].DisplayNumber)
}
