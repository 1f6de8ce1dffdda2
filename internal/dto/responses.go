package dto

import "github.com/ignatzorin/freelance-escrow/internal/models"

// ErrorResponse описывает стандартный формат ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse описывает стандартный успешный ответ с сообщением.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse описывает ответ на регистрацию и вход.
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// ApproveCompletionResponse описывает результат принятия работы.
type ApproveCompletionResponse struct {
	Project *models.Project `json:"project"`
	Payment *models.Payment `json:"payment"`
}
