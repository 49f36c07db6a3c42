package dto

type CreateApplicationRequest struct {
	JobID        string  `json:"job_id" validate:"required"`
	CoverLetter  string  `json:"cover_letter" validate:"omitempty,max=3000"`
	ProposedRate float64 `json:"proposed_rate" validate:"omitempty,min=0"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
}
