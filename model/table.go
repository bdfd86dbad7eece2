package model

// TableInfo describes one table/collection as reported by a driver's
// tables() call, or as cached on disk under cache/<source-id>/tables.json.
// Optional fields come back nil when the backend doesn't report them.
type TableInfo struct {
	Name             string `json:"name"`
	RowCount         *int64 `json:"rowCount,omitempty"`
	SizeBytes        *int64 `json:"sizeBytes,omitempty"`
	LastAccessedUnix *int64 `json:"lastAccessedUnix,omitempty"`
}
