package model

import "encoding/json"

// QueryRequestKind tags which of the four QueryRequest shapes is populated.
type QueryRequestKind string

const (
	QueryKindSQL      QueryRequestKind = "sql"
	QueryKindBuilder  QueryRequestKind = "builder"
	QueryKindCommand  QueryRequestKind = "command"
	QueryKindDocument QueryRequestKind = "document"
)

// SQLQuery is literal SQL with backend-native placeholders already
// substituted, either by the caller or by the dialect builder.
type SQLQuery struct {
	Text           string `json:"text"`
	PositionalArgs []any  `json:"positionalArgs"`
}

// BuilderQuery is a structured request the driver delegates to the dialect
// builder (§4.4) before executing the resulting SQL.
type BuilderQuery struct {
	Table   string            `json:"table"`
	Columns []string          `json:"columns,omitempty"`
	Paging  Paging            `json:"paging"`
	Orders  []OrderCondition  `json:"orders,omitempty"`
	Filters []FilterCondition `json:"filters,omitempty"`
}

// CommandQuery is a Redis-style command: a string head plus opaque string
// arguments.
type CommandQuery struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// DocumentQuery is a MongoDB-style find: a collection name plus a JSON
// object filter (empty object matches all documents).
type DocumentQuery struct {
	Collection string `json:"collection"`
	FilterJSON string `json:"filterJson"`
}

// QueryRequest is the tagged union of the four request shapes a Session's
// query method accepts. Exactly the field matching Kind is populated.
type QueryRequest struct {
	Kind     QueryRequestKind `json:"kind"`
	SQL      *SQLQuery        `json:"sql,omitempty"`
	Builder  *BuilderQuery    `json:"builder,omitempty"`
	Command  *CommandQuery    `json:"command,omitempty"`
	Document *DocumentQuery   `json:"document,omitempty"`
}

// NewSQLQueryRequest builds a Sql-kind QueryRequest.
func NewSQLQueryRequest(text string, args ...any) QueryRequest {
	return QueryRequest{Kind: QueryKindSQL, SQL: &SQLQuery{Text: text, PositionalArgs: args}}
}

// NewBuilderQueryRequest builds a Builder-kind QueryRequest.
func NewBuilderQueryRequest(b BuilderQuery) QueryRequest {
	return QueryRequest{Kind: QueryKindBuilder, Builder: &b}
}

// NewCommandQueryRequest builds a Command-kind QueryRequest.
func NewCommandQueryRequest(name string, args ...string) QueryRequest {
	return QueryRequest{Kind: QueryKindCommand, Command: &CommandQuery{Name: name, Args: args}}
}

// NewDocumentQueryRequest builds a Document-kind QueryRequest.
func NewDocumentQueryRequest(collection, filterJSON string) QueryRequest {
	return QueryRequest{
		Kind:     QueryKindDocument,
		Document: &DocumentQuery{Collection: collection, FilterJSON: filterJSON},
	}
}

// QueryResponseKind tags which of the three QueryResponse shapes is populated.
type QueryResponseKind string

const (
	ResponseKindRows      QueryResponseKind = "rows"
	ResponseKindValue     QueryResponseKind = "value"
	ResponseKindDocuments QueryResponseKind = "documents"
)

// Rows is the normalized tabular result SQL drivers return: an ordered list
// of column names and, for each row, an ordered list of string cells in the
// same order (see §4.3 for the per-type stringification rules).
type Rows struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// QueryResponse is the tagged union a Session's query method returns.
type QueryResponse struct {
	Kind      QueryResponseKind `json:"kind"`
	Rows      *Rows             `json:"rows,omitempty"`
	Value     json.RawMessage   `json:"value,omitempty"`
	Documents []json.RawMessage `json:"documents,omitempty"`
}

// NewRowsResponse builds a Rows-kind QueryResponse.
func NewRowsResponse(columns []string, rows [][]string) QueryResponse {
	return QueryResponse{Kind: ResponseKindRows, Rows: &Rows{Columns: columns, Rows: rows}}
}

// NewValueResponse builds a Value-kind QueryResponse from an already-
// marshaled JSON value.
func NewValueResponse(value json.RawMessage) QueryResponse {
	return QueryResponse{Kind: ResponseKindValue, Value: value}
}

// NewDocumentsResponse builds a Documents-kind QueryResponse.
func NewDocumentsResponse(documents []json.RawMessage) QueryResponse {
	return QueryResponse{Kind: ResponseKindDocuments, Documents: documents}
}
