package entity

type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodDebit       PaymentMethod = "debit"
	MethodCredit      PaymentMethod = "credit"
	MethodWallet      PaymentMethod = "mobile-wallet"
	MethodMealVoucher PaymentMethod = "meal-voucher"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodDebit, MethodCredit, MethodWallet, MethodMealVoucher:
		return true
	}
	return false
}

// Bucket maps a method to its shift reconciliation group.
func (m PaymentMethod) Bucket() string {
	switch m {
	case MethodCash:
		return "cash"
	case MethodDebit, MethodCredit:
		return "card"
	default:
		return "other"
	}
}
