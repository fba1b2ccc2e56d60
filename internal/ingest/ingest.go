package ingest

// FileEntry is one discovered certificate file, in walk order.
type FileEntry struct {
	Path string
	Ext  string // normalized, without dot
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}
