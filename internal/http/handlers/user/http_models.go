package user

import appuser "userhub/internal/app/user"

// UserRequest is the body of POST /users and PUT /users/{id}.
// Presence of name/email is checked by the client, not here.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DeleteResponse struct {
	Message string           `json:"message"`
	User    *appuser.UserDto `json:"user"`
}
