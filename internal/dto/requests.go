package dto

// RegisterRequest описывает тело запроса регистрации.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest описывает тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest описывает тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateProjectRequest описывает тело запроса создания проекта.
type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Budget      float64 `json:"budget" binding:"required"`
	Duration    int     `json:"duration" binding:"required"`
	Category    string  `json:"category"`
}

// CreateBidRequest описывает тело запроса создания отклика.
type CreateBidRequest struct {
	ProjectID    string  `json:"project_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	DeliveryTime int     `json:"delivery_time" binding:"required"`
	Proposal     string  `json:"proposal" binding:"required"`
}

// UpdateBidStatusRequest описывает тело запроса принятия/отклонения отклика.
type UpdateBidStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DepositRequest описывает тело запроса пополнения кошелька.
type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// PayRequest описывает тело запроса прямой оплаты отклика.
type PayRequest struct {
	ProjectID string  `json:"project_id" binding:"required"`
	BidID     string  `json:"bid_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

// RejectCompletionRequest описывает тело запроса отклонения работы.
type RejectCompletionRequest struct {
	Reason string `json:"reason"`
}

// ResolveDisputeRequest описывает тело запроса закрытия спора.
type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// SeedRequest описывает параметры наполнения демо-данными.
type SeedRequest struct {
	NumUsers    int `json:"num_users"`
	NumProjects int `json:"num_projects"`
}
