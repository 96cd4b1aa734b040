package dashboard

// Time range codes accepted by chart widgets. The mapping to a month count is
// a fixed lookup, not a continuous parameter: the backend aggregates by whole
// months, so both "7d" and "30d" resolve to the current month.
const (
	RangeLast7Days   = "7d"
	RangeLast30Days  = "30d"
	RangeLast90Days  = "90d"
	RangeLast12Month = "12m"
)

// MonthsForRange converts a time-range code into the number of months
// requested from the backend. Unknown codes fall back to 12 months.
func MonthsForRange(code string) int {
	switch code {
	case RangeLast7Days:
		return 1
	case RangeLast30Days:
		return 1
	case RangeLast90Days:
		return 3
	case RangeLast12Month:
		return 12
	default:
		return 12
	}
}

// MonthsForRangeLabel converts a human-facing range label (used by the
// best-selling widget) into a month count. Unknown labels fall back to 6.
func MonthsForRangeLabel(label string) int {
	switch label {
	case "Last 7 Days":
		return 1
	case "Last 30 Days":
		return 1
	case "Last 3 Months":
		return 3
	case "Last 6 Months":
		return 6
	default:
		return 6
	}
}

// RangeCodes lists the selectable time-range codes in display order.
func RangeCodes() []string {
	return []string{RangeLast90Days, RangeLast30Days, RangeLast7Days, RangeLast12Month}
}

// RangeLabels lists the selectable range labels in display order.
func RangeLabels() []string {
	return []string{"Last 6 Months", "Last 3 Months", "Last 30 Days", "Last 7 Days"}
}
