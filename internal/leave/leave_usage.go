package leave

// Usage is the per-employee, per-year consumption of the annual allowance.
// Sick leave never appears in either sum.
//
// CommittedDays counts PENDING plus APPROVED requests and guards creation and
// edits; ApprovedDays counts APPROVED only and guards approval. A pending
// request therefore constrains new requests but not the approval of an
// existing one.
type Usage struct {
	ApprovedDays  int `gorm:"column:approved_days"`
	CommittedDays int `gorm:"column:committed_days"`
}
