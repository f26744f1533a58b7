package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Page is the paginated envelope returned by every get-page operation.
// Result is never nil; TotalCount is the size of the filtered set.
type Page[T any] struct {
	Result     []T `json:"result"`
	PageIndex  int `json:"pageIndex"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}

// PageParams holds the 1-based page index and the page size.
type PageParams struct {
	PageIndex int
	PageSize  int
}

// Offset returns the number of rows to skip for this page. It saturates at
// math.MaxInt instead of overflowing.
func (p PageParams) Offset() int {
	skipped, size := p.Index()-1, p.Size()
	if skipped > math.MaxInt/size {
		return math.MaxInt
	}
	return skipped * size
}

// Index returns the page index, treating values below 1 as the first page.
func (p PageParams) Index() int {
	if p.PageIndex < 1 {
		return 1
	}
	return p.PageIndex
}

// Size returns the page size, treating values below 1 as 1.
func (p PageParams) Size() int {
	if p.PageSize < 1 {
		return 1
	}
	return p.PageSize
}

// OrderParameters are the filters accepted by the order get-page operation.
type OrderParameters struct {
	PageParams
	// Status is matched against OrderStatus; unparseable values are ignored.
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
}

// ProductParameters are the filters accepted by the product get-page operation.
type ProductParameters struct {
	PageParams
	SearchTerm string
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
}

// DropshipperParameters are the filters accepted by the dropshipper get-page operation.
type DropshipperParameters struct {
	PageParams
	SearchTerm string
	IsActive   *bool
}

// NameParameters filter catalog lookups (categories, brands) by name.
type NameParameters struct {
	PageParams
	SearchTerm string
}
