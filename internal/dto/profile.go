package dto

type ProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=60"`
}

type ProfileResponse struct {
	Name string `json:"name"`
}
