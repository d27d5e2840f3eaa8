// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
// The name is optional; a blank name becomes the default display name.
type SignupReq struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserRes is the public view of a user.
type UserRes struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UpdateProfileReq is the body of PUT /me.
type UpdateProfileReq struct {
	Name string `json:"name" binding:"required,max=100"`
}
