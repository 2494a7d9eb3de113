package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// UserToResponse converts a User entity to its response DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Role:           string(user.Role),
		Specialization: user.Specialization,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
	}
}
