package catalog

type SaveServiceRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,gt=0"`
	Position    int    `json:"position"`
}
