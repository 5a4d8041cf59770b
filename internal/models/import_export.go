package models

// ImportRow is one loosely-typed record handed to the import pipeline,
// either produced by the CSV parser or posted directly as JSON. Keys are
// canonical field names, values are raw strings for CSV input and whatever
// the JSON decoder produced otherwise.
type ImportRow map[string]any

// RowError records why one row was skipped. Row is 1-based and counts data
// rows, not the header.
type RowError struct {
	Row    int               `json:"row"`
	Fields map[string]string `json:"fields"`
}

// UpsertOp is one instruction of the bulk-write plan: match on Code, set the
// normalized fields, stamp a creation time only when inserting. Set keys are
// canonical field names so the plan stays persistence-agnostic.
type UpsertOp struct {
	Code string
	Set  map[string]any
}

// BulkResult summarizes an executed plan. Errors holds per-operation
// failures; sibling operations still committed.
type BulkResult struct {
	Matched  int64    `json:"matched"`
	Inserted int64    `json:"inserted"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportResult is the import response: the persisted records read back by
// code, the write counts, and the rows that never made it into the plan.
type ImportResult struct {
	Products     []Product  `json:"products"`
	Matched      int64      `json:"matched"`
	Inserted     int64      `json:"inserted"`
	UpsertErrors []string   `json:"upsertErrors,omitempty"`
	RejectedRows []RowError `json:"rejectedRows,omitempty"`
}

type ImportRequest struct {
	Products []ImportRow `json:"products"`
}

const (
	ExportFormatShopify = "shopify"
	ExportFormatExcel   = "excel"
)

// ExportRequest selects records by storage id; an absent or empty Products
// list means "export everything".
type ExportRequest struct {
	Format   string   `json:"format"`
	Products []string `json:"products,omitempty"`
}

type ExportFile struct {
	Filename string
	Content  string
}
