package ui

import (
	"fmt"
	"io"
	"strings"

	"userhub/internal/clients/userapi"
)

const (
	loadingText = "Loading users..."
	emptyText   = "No users found. Add one above!"
)

// Render writes the whole screen: banner, form and list.
func (a *App) Render(w io.Writer) error {
	s := a.State()
	m, visible := a.Message()

	var b strings.Builder
	b.WriteString("=== User Management ===\n\n")
	if visible {
		renderMessage(&b, m)
	}
	renderForm(&b, s)
	b.WriteString("\n")
	renderList(&b, s.Users, s.Loading)

	_, err := io.WriteString(w, b.String())
	return err
}

func renderMessage(b *strings.Builder, m Message) {
	fmt.Fprintf(b, "[%s] %s\n\n", m.Kind, m.Text)
}

func renderForm(b *strings.Builder, s State) {
	heading, action := "Add New User", "Add User"
	if s.Editing() {
		heading, action = "Edit User", "Update User"
	}

	fmt.Fprintf(b, "-- %s --\n", heading)
	fmt.Fprintf(b, "Name:  %s\n", s.Draft.Name)
	fmt.Fprintf(b, "Email: %s\n", s.Draft.Email)
	fmt.Fprintf(b, "[%s]", action)
	if s.Editing() {
		b.WriteString(" [Cancel]")
	}
	b.WriteString("\n")
}

// renderList is purely derived from users and loading.
func renderList(b *strings.Builder, users []userapi.User, loading bool) {
	b.WriteString("-- Users List --\n")
	switch {
	case loading:
		b.WriteString(loadingText + "\n")
	case len(users) == 0:
		b.WriteString(emptyText + "\n")
	default:
		for _, u := range users {
			renderCard(b, u)
		}
	}
}

func renderCard(b *strings.Builder, u userapi.User) {
	fmt.Fprintf(b, "ID: %d\n", u.ID)
	fmt.Fprintf(b, "  %s\n", u.Name)
	fmt.Fprintf(b, "  %s\n", u.Email)
	fmt.Fprintf(b, "  [edit %d] [delete %d]\n", u.ID, u.ID)
}
