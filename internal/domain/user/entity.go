package user

// User is the only persisted entity. ID is assigned by the database and never changes.
type User struct {
	ID    int64  `json:"id" sql:"id"`
	Name  string `json:"name" sql:"name"`
	Email string `json:"email" sql:"email"`
}
