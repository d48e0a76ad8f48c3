package payment

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusWaived  Status = "waived"
)
