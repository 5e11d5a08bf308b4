package entity

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentApproved   PaymentStatus = "approved"
	PaymentRejected   PaymentStatus = "rejected"
	PaymentCancelled  PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentProcessing, PaymentApproved, PaymentRejected, PaymentCancelled},
	PaymentProcessing: {PaymentApproved, PaymentRejected, PaymentCancelled},
	PaymentApproved:   {},
	PaymentRejected:   {},
	PaymentCancelled:  {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

func (s PaymentStatus) Terminal() bool {
	return s == PaymentApproved || s == PaymentRejected || s == PaymentCancelled
}

func (s PaymentStatus) CanTransition(target PaymentStatus) bool {
	for _, t := range paymentTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}
