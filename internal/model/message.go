package model

// GenerateMessageResponse 是 /api/generate-message 成功时的响应体。
type GenerateMessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse 是所有接口失败时的响应体。
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnniversaryResponse 描述从纪念日起始至今的天数。
type AnniversaryResponse struct {
	StartDate  LocalDate `json:"startDate"`
	Today      LocalDate `json:"today"`
	Days       int       `json:"days"`
	TodayLabel string    `json:"todayLabel"`
}

// HealthResponse 是 /healthz 的响应体。
type HealthResponse struct {
	Status       string `json:"status"`
	Templates    int    `json:"templates"`
	AIConfigured bool   `json:"aiConfigured"`
}
