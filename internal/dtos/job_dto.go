package dtos

type JobCreationRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Status       string `json:"status" binding:"omitempty,oneof=active archived"` // Defaults to "active" if empty
}

// JobUpdateRequest patches only the fields that are present.
type JobUpdateRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Status       *string `json:"status" binding:"omitempty,oneof=active archived"`
}

// JobFilter mirrors the list query string (?status=&search=).
type JobFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=active archived"`
	Search string `form:"search"`
}

type JobReorderRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required,min=1,dive,required"`
}
