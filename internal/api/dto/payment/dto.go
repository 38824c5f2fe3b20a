package payment

type DepositRequest struct {
	Amount string `json:"amount"` // Сумма депозита в валюте, строкой
}

type DepositResponse struct {
	Balance int `json:"balance"` // Баланс после зачисления
}

type BalanceResponse struct {
	Balance int `json:"balance"` // Баланс пользователя
}
