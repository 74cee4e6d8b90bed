package property

// UpsertRequest is the create / full-update payload.
type UpsertRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Price        float64  `json:"price" binding:"gte=0"`
	Location     string   `json:"location" binding:"required"`
	PropertyType string   `json:"property_type" binding:"required,property_type"`
	Beds         int      `json:"beds" binding:"gte=0"`
	Baths        int      `json:"baths" binding:"gte=0"`
	Area         float64  `json:"area" binding:"required,gt=0"`
	Images       []string `json:"images" binding:"omitempty,dive,url"`
	IsActive     *bool    `json:"is_active"`
	Status       string   `json:"status" binding:"omitempty,oneof=Available Sold"`
}

// SetActiveRequest toggles catalog visibility.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
