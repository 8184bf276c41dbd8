// Package dashboard contains the financial aggregation routines and the
// dashboard use cases built on them.
package dashboard

import (
	"time"

	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// MonthKeyLayout is the layout of trend bucket keys.
const MonthKeyLayout = "2006-01"

// TrendMonths is the length of the trailing trend window in calendar months.
const TrendMonths = 6

// RangeStartDate returns the inclusive first calendar date of the reporting
// window that ends at now.
//
// Quarter and year windows keep now's day of month. When that day does not
// exist in the target month it is clamped to the month's last day, so
// 2024-05-31 minus a quarter is 2024-02-29 rather than rolling into March.
func RangeStartDate(r entity.ReportRange, now time.Time) (time.Time, error) {
	today := entity.CalendarDate(now)

	switch r {
	case entity.ReportRangeMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case entity.ReportRangeQuarter:
		return addMonthsClamped(today, -3), nil
	case entity.ReportRangeYear:
		return addMonthsClamped(today, -12), nil
	default:
		return time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidRange,
			"range must be: month, quarter, or year",
			domainerror.ErrInvalidRange,
		)
	}
}

// TrendWindowStart returns the first day of the calendar month TrendMonths
// months before now's month.
func TrendWindowStart(now time.Time) time.Time {
	today := entity.CalendarDate(now)
	return time.Date(today.Year(), today.Month()-TrendMonths, 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the YYYY-MM bucket key of a calendar date.
func MonthKey(date time.Time) string {
	return date.Format(MonthKeyLayout)
}

// addMonthsClamped moves a calendar date by n months, clamping the day to the
// last day of the resulting month.
func addMonthsClamped(date time.Time, n int) time.Time {
	first := time.Date(date.Year(), date.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	day := date.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
