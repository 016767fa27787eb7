// internal/api/types/response.go
package types

import "user-directory/internal/domain"

// UserResponse is the public view of a user record: the subset that is safe
// to return externally. The password hash is never part of it.
type UserResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Language string `json:"language"`
	Culture  string `json:"culture"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		UserName: user.UserName,
		FullName: user.FullName,
		Email:    user.Email,
		Mobile:   user.Mobile,
		Language: user.Language,
		Culture:  user.Culture,
	}
}

// NewUserResponseList maps a slice of domain users to public views.
func NewUserResponseList(users []domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, NewUserResponse(&users[i]))
	}
	return responses
}
