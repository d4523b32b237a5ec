package user

import (
	dom "userhub/internal/domain/user"
)

type UserDto struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserInput is the body accepted by create and update.
type UserInput struct {
	Name  string
	Email string
}

func toDTO(u *dom.User) *UserDto {
	if u == nil {
		return nil
	}
	return &UserDto{
		Id:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toDTOs(list []dom.User) []UserDto {
	res := make([]UserDto, 0, len(list))
	for _, u := range list {
		item := u // copy
		res = append(res, *toDTO(&item))
	}
	return res
}
