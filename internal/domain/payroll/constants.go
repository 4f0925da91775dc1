package payroll

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	// StatusLocked is accepted by the ledger schema but no operation
	// produces it yet.
	StatusLocked = "LOCKED"
)
