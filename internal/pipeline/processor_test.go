package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certkit/copyright-extractor/constants"
	"github.com/certkit/copyright-extractor/internal/common"
	"github.com/certkit/copyright-extractor/internal/extract"
	"github.com/certkit/copyright-extractor/internal/ingest"
	"github.com/certkit/copyright-extractor/internal/parser"
	"github.com/certkit/copyright-extractor/internal/repository"
)

const certText = `--- Page 1 ---
软件名称:悬浮式设备管理软件
著作权人:杭州示例科技有限公司
首次发表日期:2023年3月15日
权利取得方式:原始取得
权利范围:全部权利
登记号:2023SR0345678
`

// fakeAcquirer scripts text acquisition per path.
type fakeAcquirer struct {
	texts map[string]string // keyed by filepath.Base
	errs  map[string]error
}

func (f fakeAcquirer) Extract(_ context.Context, path string) (extract.TextExtractionResult, error) {
	base := filepath.Base(path)
	if err, ok := f.errs[base]; ok {
		return extract.TextExtractionResult{}, err
	}
	return extract.TextExtractionResult{
		Text:       f.texts[base],
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessFile(t *testing.T) {
	proc := NewProcessor(testLogger(),
		fakeAcquirer{texts: map[string]string{"cert.png": certText}},
		parser.NewParser(testLogger()), nil)

	records, err := proc.ProcessFile(context.Background(), ingest.FileEntry{Path: "/scans/cert.png", Ext: "png"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "悬浮式设备管理软件", records[0].SoftwareName)
	assert.Equal(t, "cert.png", records[0].FileName)
	assert.Equal(t, "/scans/cert.png", records[0].FilePath)
}

func TestProcessFileAcquisitionError(t *testing.T) {
	cause := fmt.Errorf("tesseract: exit status 1: %w", common.ErrAcquisition)
	proc := NewProcessor(testLogger(),
		fakeAcquirer{errs: map[string]error{"cert.png": cause}},
		parser.NewParser(testLogger()), nil)

	_, err := proc.ProcessFile(context.Background(), ingest.FileEntry{Path: "/scans/cert.png", Ext: "png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAcquisition)
}

func TestProcessFileEmptyText(t *testing.T) {
	proc := NewProcessor(testLogger(),
		fakeAcquirer{texts: map[string]string{"blank.png": "  \n "}},
		parser.NewParser(testLogger()), nil)

	_, err := proc.ProcessFile(context.Background(), ingest.FileEntry{Path: "/scans/blank.png", Ext: "png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestProcessFileNoFields(t *testing.T) {
	proc := NewProcessor(testLogger(),
		fakeAcquirer{texts: map[string]string{"junk.png": "毫无关系的文字内容\n完全没有字段标记\n"}},
		parser.NewParser(testLogger()), nil)

	_, err := proc.ProcessFile(context.Background(), ingest.FileEntry{Path: "/scans/junk.png", Ext: "png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestProcessFileJournal(t *testing.T) {
	ctx := context.Background()
	db, err := repository.Open(ctx, ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db, nil) })

	journal := &Journal{
		Files:   repository.NewSourceFileRepository(db, testLogger()),
		Jobs:    repository.NewExtractJobRepository(db, testLogger()),
		Records: repository.NewCertificateRecordRepository(db, testLogger()),
	}

	// The journal hashes real file content, so put one on disk.
	path := filepath.Join(t.TempDir(), "cert.png")
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o644))

	proc := NewProcessor(testLogger(),
		fakeAcquirer{texts: map[string]string{"cert.png": certText}},
		parser.NewParser(testLogger()), journal)

	records, err := proc.ProcessFile(ctx, ingest.FileEntry{Path: path, Ext: "png"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Re-upserting the same content resolves to the journaled file row.
	hash, err := ingest.HashFile(path)
	require.NoError(t, err)
	file, dedup, err := journal.Files.UpsertByHash(ctx, path, "png", hash, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, dedup)

	journaled, err := journal.Records.ListByFile(ctx, file.ID)
	require.NoError(t, err)
	require.Len(t, journaled, 1)
	assert.Equal(t, "悬浮式设备管理软件", journaled[0].SoftwareName)
}
