package reporting

import "github.com/proago/crm-engine/compensation"

// Dedup keeps one record per (recruiterId, date, rowKey). A later record
// overwrites an earlier one with the same key but takes its position, so
// output order follows each key's first appearance. Returns a fresh slice.
func Dedup(records []compensation.ShiftRecord) []compensation.ShiftRecord {
	return compensation.Upsert(nil, records...)
}
