package models

// LoginUser — идентичность текущего запроса, извлечённая из проверенного
// токена. Живёт только в контексте одного запроса и никогда не хранится
// в разделяемом состоянии.
type LoginUser struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse — ответ на успешный вход или обновление токена.
type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	TokenType    string    `json:"tokenType"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int64     `json:"expiresIn"` // Срок жизни access токена в секундах
	User         *UserInfo `json:"user,omitempty"`
}
