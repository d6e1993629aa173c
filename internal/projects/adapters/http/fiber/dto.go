package fiber

type ProjectInfoResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_api_key"`
	Message string `json:"message,omitempty" example:"Invalid API key"`
}
