package entity

// Wallet belongs to exactly one user and is created in the same
// transaction as the user row. Balance starts at zero.
type Wallet struct {
	ID      string
	UserID  string
	Balance float64
}
