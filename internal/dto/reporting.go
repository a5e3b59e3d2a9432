package dto

import (
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

// AsOfParams defines the query parameter of point-in-time reports.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
}

// PeriodParams defines the query parameters of period reports.
type PeriodParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ToDomain converts the query to a date range.
func (p PeriodParams) ToDomain() domain.DateRange {
	return domain.DateRange{From: p.From, To: p.To}
}
