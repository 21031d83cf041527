package payment

import "context"

// Account is the bank account a customer transfers the order total to.
type Account struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
}

// Gateway is the provider-facing interface of the payment integration.
// The demo ships a single bank-transfer stub; a real provider adapter
// would implement this against its collections API.
type Gateway interface {
	// CollectionAccount returns the account to transfer into for an
	// order. The stub does not check that the order exists.
	CollectionAccount(ctx context.Context, orderID string) (*Account, error)
}

type bankTransferGateway struct {
	account Account
}

// NewBankTransferGateway builds a gateway that hands out one fixed
// escrow account for every order.
func NewBankTransferGateway(accountName, accountNumber, bankName string) Gateway {
	return &bankTransferGateway{account: Account{
		AccountName:   accountName,
		AccountNumber: accountNumber,
		BankName:      bankName,
	}}
}

func (g *bankTransferGateway) CollectionAccount(ctx context.Context, orderID string) (*Account, error) {
	account := g.account
	return &account, nil
}
