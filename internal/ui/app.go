package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"userhub/internal/clients/userapi"
	"userhub/internal/httpclient"
	"userhub/internal/logging"
)

const (
	msgCreated = "User created successfully!"
	msgUpdated = "User updated successfully!"
	msgDeleted = "User deleted successfully!"

	msgFetchFailed  = "Failed to fetch users"
	msgSaveFailed   = "Failed to save user"
	msgDeleteFailed = "Failed to delete user"

	// DeletePrompt is the question asked before a delete goes out.
	DeletePrompt = "Are you sure you want to delete this user?"
)

// API is the subset of the users client the app drives. *userapi.Client satisfies it.
type API interface {
	GetAll(ctx context.Context) ([]userapi.User, error)
	Create(ctx context.Context, in userapi.UserInput) (userapi.User, error)
	Update(ctx context.Context, id int64, in userapi.UserInput) (userapi.User, error)
	Delete(ctx context.Context, id int64) (userapi.DeleteResult, error)
}

// Confirmer gates destructive actions. Only an explicit yes proceeds.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// State is a snapshot of everything the app renders.
type State struct {
	Users     []userapi.User
	Loading   bool
	Error     string
	Success   string
	EditingID int64 // 0 when creating
	Draft     Draft
}

// Editing reports whether the form targets an existing user.
func (s State) Editing() bool { return s.EditingID != 0 }

type Option func(*App)

// WithMessageTTL overrides how long messages stay visible.
func WithMessageTTL(ttl time.Duration) Option {
	return func(a *App) { a.messageTTL = ttl }
}

// App is the root component: it owns all state and orchestrates API calls.
// Actions are not serialized; overlapping calls may interleave.
type App struct {
	mu         sync.Mutex
	api        API
	confirm    Confirmer
	logger     logging.Logger
	state      State
	banner     *Banner
	messageTTL time.Duration
}

func NewApp(api API, confirm Confirmer, logger logging.Logger, opts ...Option) *App {
	a := &App{
		api:        api,
		confirm:    confirm,
		logger:     logger.With("component", "ui_app"),
		messageTTL: DefaultMessageTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.banner = NewBanner(a.messageTTL, a.messageExpired)
	return a
}

// Mount loads the initial list.
func (a *App) Mount(ctx context.Context) {
	a.fetchUsers(ctx)
}

// Close tears the app down and cancels the pending message dismissal.
func (a *App) Close() {
	a.banner.Close()
}

// State returns a copy of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.state
	s.Users = append([]userapi.User(nil), a.state.Users...)
	return s
}

// Message returns the visible banner message, if any.
func (a *App) Message() (Message, bool) {
	return a.banner.Current()
}

// SetName and SetEmail edit the draft like controlled form inputs.
func (a *App) SetName(v string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Draft.Name = v
}

func (a *App) SetEmail(v string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Draft.Email = v
}

// fetchUsers reloads the list. It clears a previous error but keeps a success
// message set by the action that triggered the reload.
func (a *App) fetchUsers(ctx context.Context) {
	a.mu.Lock()
	a.state.Loading = true
	a.setMessagesLocked("", a.state.Success)
	a.mu.Unlock()

	users, err := a.api.GetAll(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Loading = false
	if err != nil {
		a.logger.Error("error fetching users", "error", err)
		a.setMessagesLocked(errorText(err, msgFetchFailed), a.state.Success)
		return
	}
	a.state.Users = users
}

// Submit creates a user from the draft, or updates the one being edited.
func (a *App) Submit(ctx context.Context) {
	a.mu.Lock()
	draft := a.state.Draft
	editingID := a.state.EditingID
	a.setMessagesLocked("", "")
	if err := draft.Validate(); err != nil {
		a.setMessagesLocked(err.Error(), "")
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	var (
		err     error
		success string
	)
	if editingID != 0 {
		_, err = a.api.Update(ctx, editingID, draft.input())
		success = msgUpdated
	} else {
		_, err = a.api.Create(ctx, draft.input())
		success = msgCreated
	}

	a.mu.Lock()
	if err != nil {
		a.logger.Error("error saving user", "error", err, "editing_id", editingID)
		a.setMessagesLocked(errorText(err, msgSaveFailed), "")
		a.mu.Unlock()
		return
	}
	a.state.Draft = Draft{}
	a.state.EditingID = 0
	a.setMessagesLocked("", success)
	a.mu.Unlock()

	a.fetchUsers(ctx)
}

// Edit loads a user into the draft.
func (a *App) Edit(u userapi.User) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Draft = Draft{Name: u.Name, Email: u.Email}
	a.state.EditingID = u.ID
	a.setMessagesLocked("", "")
}

// Cancel abandons the current edit without any network call.
func (a *App) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Draft = Draft{}
	a.state.EditingID = 0
	a.setMessagesLocked("", "")
}

// Delete asks for confirmation and removes the user. Declining is a silent no-op.
func (a *App) Delete(ctx context.Context, id int64) {
	if a.confirm == nil || !a.confirm.Confirm(DeletePrompt) {
		return
	}

	a.mu.Lock()
	a.setMessagesLocked("", "")
	a.mu.Unlock()

	_, err := a.api.Delete(ctx, id)

	a.mu.Lock()
	if err != nil {
		a.logger.Error("error deleting user", "error", err, "id", id)
		a.setMessagesLocked(errorText(err, msgDeleteFailed), "")
		a.mu.Unlock()
		return
	}
	a.setMessagesLocked("", msgDeleted)
	a.mu.Unlock()

	a.fetchUsers(ctx)
}

// setMessagesLocked updates error/success and the banner. Error wins when both are set.
func (a *App) setMessagesLocked(errText, successText string) {
	a.state.Error = errText
	a.state.Success = successText
	if errText != "" {
		a.state.Success = ""
	}
	a.banner.Show(visibleMessage(a.state))
}

func (a *App) messageExpired(m Message) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if visibleMessage(a.state) != m {
		return
	}
	a.state.Error = ""
	a.state.Success = ""
}

func visibleMessage(s State) Message {
	switch {
	case s.Error != "":
		return Message{Text: s.Error, Kind: KindError}
	case s.Success != "":
		return Message{Text: s.Success, Kind: KindSuccess}
	default:
		return Message{}
	}
}

// errorText prefers the normalized API message, then the error text, then fallback.
func errorText(err error, fallback string) string {
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
