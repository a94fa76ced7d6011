package model

import "time"

type User struct {
	ID             int64
	Username       string
	FirstName      *string
	MiddleName     *string
	LastName       *string
	Email          *string
	ProfilePicture []byte
	CreatedAt      time.Time
}

func (u User) GetID() int64 { return u.ID }

type UserDTO struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username" validate:"required,max=64"`
	FirstName      *string   `json:"firstName,omitempty" validate:"omitempty,max=100"`
	MiddleName     *string   `json:"middleName,omitempty" validate:"omitempty,max=100"`
	LastName       *string   `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email          *string   `json:"email,omitempty" validate:"omitempty,email,max=254"`
	ProfilePicture []byte    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (d UserDTO) GetID() int64 { return d.ID }

func UserToDTO(u User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}

func UserFromDTO(d UserDTO) User {
	return User{
		ID:             d.ID,
		Username:       d.Username,
		FirstName:      d.FirstName,
		MiddleName:     d.MiddleName,
		LastName:       d.LastName,
		Email:          d.Email,
		ProfilePicture: d.ProfilePicture,
		CreatedAt:      d.CreatedAt,
	}
}

// Principal builds the token identity for the user.
func (u User) Principal() Principal {
	principal := Principal{
		UserID:   formatInt(u.ID),
		Username: u.Username,
	}
	if u.Email != nil {
		principal.Email = *u.Email
	}

	return principal
}
