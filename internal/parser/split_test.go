package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPagesEmpty(t *testing.T) {
	assert.Nil(t, SplitPages(""))
	assert.Nil(t, SplitPages("   \n\t  \n"))
}

func TestSplitPagesNoDelimiter(t *testing.T) {
	pages := SplitPages("  单页证书文本  ")
	require.Len(t, pages, 1)
	assert.Equal(t, "单页证书文本", pages[0])
}

func TestSplitPagesMultiPage(t *testing.T) {
	raw := "--- Page 1 ---\n第一页内容\n--- Page 2 ---\n第二页内容\n--- Page 3 ---\n第三页内容\n"
	pages := SplitPages(raw)
	require.Len(t, pages, 3)
	assert.Equal(t, "第一页内容", pages[0])
	assert.Equal(t, "第二页内容", pages[1])
	assert.Equal(t, "第三页内容", pages[2])
}

func TestSplitPagesDropsEmptySegments(t *testing.T) {
	raw := "--- Page 1 ---\n\n--- Page 2 ---\n有内容的页\n--- Page 3 ---\n   \n"
	pages := SplitPages(raw)
	require.Len(t, pages, 1)
	assert.Equal(t, "有内容的页", pages[0])
}

func TestSplitPagesOnlyDelimiters(t *testing.T) {
	// Delimiters with nothing between them leave no page, but the input is
	// not blank so the trimmed whole is returned as one block.
	pages := SplitPages("--- Page 1 ---")
	require.Len(t, pages, 1)
	assert.Equal(t, "--- Page 1 ---", pages[0])
}
