package model

import "github.com/sqlercore/sqler/errs"

const maxPageSize = 10_000

// Paging is a 1-indexed page number plus a bounded page size.
type Paging struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Validate enforces page >= 1 and size in [1, 10000].
func (p Paging) Validate() error {
	if p.Page < 1 {
		return errs.NewInvalidRequest("page must be >= 1")
	}

	if p.Size < 1 || p.Size > maxPageSize {
		return errs.NewInvalidRequest("size must be between 1 and 10000")
	}

	return nil
}

// Offset computes the SQL OFFSET for this page.
func (p Paging) Offset() int {
	return (p.Page - 1) * p.Size
}
