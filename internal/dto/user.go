package dto

import (
	"github.com/yukikurage/task-management-api/internal/models"
)

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=7"`
	MatchingPassword string `json:"matchingPassword" binding:"required"`
	Name             string `json:"name" binding:"required"`
}

// AuthenticationRequest carries login credentials.
type AuthenticationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthenticationResponse carries the issued session token. The raw
// confirmation token value is included on registration only.
type AuthenticationResponse struct {
	JWT               string `json:"jwt"`
	ConfirmationToken string `json:"confirmationToken,omitempty"`
}

// UserViewDTO represents a user in API responses
type UserViewDTO struct {
	ID      uint64          `json:"id"`
	Email   string          `json:"email"`
	Name    string          `json:"name"`
	Enabled bool            `json:"enabled"`
	Role    models.UserRole `json:"role"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Content       []UserViewDTO `json:"content"`
	TotalElements int64         `json:"total_elements"`
	PageSize      int           `json:"page_size"`
	PageNumber    int           `json:"page_number"`
	TotalPages    int           `json:"total_pages"`
}

// ToUserViewDTO converts a User model to UserViewDTO
func ToUserViewDTO(user models.User) UserViewDTO {
	return UserViewDTO{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Enabled: user.Enabled,
		Role:    user.Role,
	}
}

// ToUserListResponse converts a page of users to UserListResponse
func ToUserListResponse(users []models.User, pageNumber, pageSize int, totalElements int64) UserListResponse {
	content := make([]UserViewDTO, len(users))
	for i, user := range users {
		content[i] = ToUserViewDTO(user)
	}

	return UserListResponse{
		Content:       content,
		TotalElements: totalElements,
		PageSize:      pageSize,
		PageNumber:    pageNumber + 1,
		TotalPages:    totalPages(totalElements, pageSize),
	}
}

func totalPages(totalElements int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(totalElements) / pageSize
	if int(totalElements)%pageSize > 0 {
		pages++
	}
	return pages
}
