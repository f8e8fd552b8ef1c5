package bank

type Account struct {
	Balance int
}

func (a *Account) Deposit(n int) { a.Balance += n }

type Wallet struct {
	Coins []int
}

func (w *Wallet) Add(c int) { w.Coins = append(w.Coins, c) }
