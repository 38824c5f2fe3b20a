package auth

type RegisterRequest struct {
	Name     string `json:"name"`     // Имя пользователя
	Login    string `json:"login"`    // Логин (уникальный)
	Password string `json:"password"` // Пароль (проверяется политикой)
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type UnlockRequest struct {
	UserID int `json:"user_id"` // ID разблокируемого аккаунта
}
