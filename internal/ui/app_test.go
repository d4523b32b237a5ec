package ui

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/clients/userapi"
	"userhub/internal/httpclient"
	"userhub/internal/logging"
)

// fakeAPI keeps users in memory and records calls. Setting an *Err field makes
// the matching call fail.
type fakeAPI struct {
	mu        sync.Mutex
	users     []userapi.User
	seq       int64
	getAllErr error
	saveErr   error
	deleteErr error
	calls     []string
}

func (f *fakeAPI) record(c string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) GetAll(ctx context.Context) ([]userapi.User, error) {
	f.record("getAll")
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	return append([]userapi.User(nil), f.users...), nil
}

func (f *fakeAPI) Create(ctx context.Context, in userapi.UserInput) (userapi.User, error) {
	f.record("create")
	if f.saveErr != nil {
		return userapi.User{}, f.saveErr
	}
	f.seq++
	u := userapi.User{ID: f.seq, Name: in.Name, Email: in.Email}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int64, in userapi.UserInput) (userapi.User, error) {
	f.record("update")
	if f.saveErr != nil {
		return userapi.User{}, f.saveErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name, f.users[i].Email = in.Name, in.Email
			return f.users[i], nil
		}
	}
	return userapi.User{}, &httpclient.APIError{Status: http.StatusNotFound, Message: "User not found"}
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) (userapi.DeleteResult, error) {
	f.record("delete")
	if f.deleteErr != nil {
		return userapi.DeleteResult{}, f.deleteErr
	}
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return userapi.DeleteResult{User: u}, nil
		}
	}
	return userapi.DeleteResult{}, &httpclient.APIError{Status: http.StatusNotFound, Message: "User not found"}
}

func always(answer bool) Confirmer {
	return ConfirmFunc(func(string) bool { return answer })
}

func newTestApp(t *testing.T, api API, confirm Confirmer) *App {
	t.Helper()
	a := NewApp(api, confirm, logging.NewNop())
	t.Cleanup(a.Close)
	return a
}

func TestMount_LoadsUsers(t *testing.T) {
	api := &fakeAPI{users: []userapi.User{{ID: 1, Name: "Ann", Email: "ann@x.com"}}}
	a := newTestApp(t, api, always(true))

	a.Mount(context.Background())

	s := a.State()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Equal(t, api.users, s.Users)
}

func TestMount_FailureKeepsUsersAndSetsError(t *testing.T) {
	api := &fakeAPI{users: []userapi.User{{ID: 1, Name: "Ann"}}}
	a := newTestApp(t, api, always(true))
	a.Mount(context.Background())

	api.getAllErr = &httpclient.APIError{Status: 0, Message: httpclient.NetworkErrorMessage}
	a.Mount(context.Background())

	s := a.State()
	assert.False(t, s.Loading)
	assert.Equal(t, httpclient.NetworkErrorMessage, s.Error)
	assert.Len(t, s.Users, 1)

	m, ok := a.Message()
	require.True(t, ok)
	assert.Equal(t, Message{Text: httpclient.NetworkErrorMessage, Kind: KindError}, m)
}

func TestSubmit_Create(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(t, api, always(true))

	a.SetName("Ann")
	a.SetEmail("ann@x.com")
	a.Submit(context.Background())

	s := a.State()
	assert.Equal(t, msgCreated, s.Success)
	assert.Empty(t, s.Error)
	assert.Equal(t, Draft{}, s.Draft)
	assert.Equal(t, []userapi.User{{ID: 1, Name: "Ann", Email: "ann@x.com"}}, s.Users)
	assert.Equal(t, []string{"create", "getAll"}, api.calls)
}

func TestSubmit_CreateFailureRetainsDraft(t *testing.T) {
	api := &fakeAPI{saveErr: &httpclient.APIError{Status: 500, Message: "duplicate key value"}}
	a := newTestApp(t, api, always(true))

	a.SetName("Ann")
	a.SetEmail("ann@x.com")
	a.Submit(context.Background())

	s := a.State()
	assert.Equal(t, "duplicate key value", s.Error)
	assert.Empty(t, s.Success)
	assert.Equal(t, Draft{Name: "Ann", Email: "ann@x.com"}, s.Draft)
	assert.Equal(t, []string{"create"}, api.calls)
}

func TestSubmit_InvalidDraftMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(t, api, always(true))

	a.SetName("Ann")
	a.SetEmail("not-an-email")
	a.Submit(context.Background())

	s := a.State()
	assert.Equal(t, "Email must be a valid email address", s.Error)
	assert.Empty(t, api.calls)
}

func TestEditThenSubmitUpdates(t *testing.T) {
	api := &fakeAPI{users: []userapi.User{{ID: 4, Name: "Ann", Email: "ann@x.com"}}, seq: 4}
	a := newTestApp(t, api, always(true))
	a.Mount(context.Background())

	a.Edit(a.State().Users[0])
	s := a.State()
	assert.Equal(t, int64(4), s.EditingID)
	assert.Equal(t, Draft{Name: "Ann", Email: "ann@x.com"}, s.Draft)

	a.SetName("Ann B")
	a.Submit(context.Background())

	s = a.State()
	assert.Equal(t, msgUpdated, s.Success)
	assert.Zero(t, s.EditingID)
	assert.Equal(t, Draft{}, s.Draft)
	assert.Equal(t, "Ann B", s.Users[0].Name)
}

func TestSubmit_UpdateFailureKeepsEditing(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(t, api, always(true))

	a.Edit(userapi.User{ID: 5, Name: "X", Email: "y@z.com"})
	a.Submit(context.Background())

	s := a.State()
	assert.Equal(t, "User not found", s.Error)
	assert.Equal(t, int64(5), s.EditingID)
	assert.Equal(t, Draft{Name: "X", Email: "y@z.com"}, s.Draft)
}

func TestEdit_ClearsMessages(t *testing.T) {
	api := &fakeAPI{getAllErr: errors.New("boom")}
	a := newTestApp(t, api, always(true))
	a.Mount(context.Background())
	require.NotEmpty(t, a.State().Error)

	a.Edit(userapi.User{ID: 1, Name: "Ann", Email: "ann@x.com"})

	s := a.State()
	assert.Empty(t, s.Error)
	_, visible := a.Message()
	assert.False(t, visible)
}

func TestCancel(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(t, api, always(true))

	a.Edit(userapi.User{ID: 2, Name: "Bob", Email: "bob@x.com"})
	a.Cancel()

	s := a.State()
	assert.Zero(t, s.EditingID)
	assert.Equal(t, Draft{}, s.Draft)
	assert.Empty(t, api.calls)
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{users: []userapi.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}}, seq: 2}
	a := newTestApp(t, api, always(true))

	a.Delete(context.Background(), 1)

	s := a.State()
	assert.Equal(t, msgDeleted, s.Success)
	assert.Equal(t, []userapi.User{{ID: 2, Name: "Bob"}}, s.Users)
	assert.Equal(t, []string{"delete", "getAll"}, api.calls)
}

func TestDelete_DeclinedIsNoop(t *testing.T) {
	api := &fakeAPI{users: []userapi.User{{ID: 1, Name: "Ann"}}}
	var asked string
	a := newTestApp(t, api, ConfirmFunc(func(p string) bool {
		asked = p
		return false
	}))

	a.Delete(context.Background(), 1)

	assert.Equal(t, DeletePrompt, asked)
	assert.Empty(t, api.calls)
	assert.Empty(t, a.State().Success)
}

func TestDelete_Failure(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("")}
	a := newTestApp(t, api, always(true))

	a.Delete(context.Background(), 1)

	assert.Equal(t, msgDeleteFailed, a.State().Error)
	assert.Equal(t, []string{"delete"}, api.calls)
}

func TestMessage_AutoDismiss(t *testing.T) {
	api := &fakeAPI{}
	a := NewApp(api, always(true), logging.NewNop(), WithMessageTTL(30*time.Millisecond))
	defer a.Close()

	a.SetName("Ann")
	a.SetEmail("ann@x.com")
	a.Submit(context.Background())
	require.Equal(t, msgCreated, a.State().Success)

	require.Eventually(t, func() bool {
		_, visible := a.Message()
		return !visible && a.State().Success == ""
	}, time.Second, 5*time.Millisecond)
}

func TestMessage_ReplacedMessageRestartsTimer(t *testing.T) {
	api := &fakeAPI{}
	a := NewApp(api, always(true), logging.NewNop(), WithMessageTTL(150*time.Millisecond))
	defer a.Close()

	a.Submit(context.Background()) // invalid draft -> error
	require.NotEmpty(t, a.State().Error)

	time.Sleep(100 * time.Millisecond)
	a.SetName("Ann")
	a.SetEmail("ann@x.com")
	a.Submit(context.Background())

	// the first timer would have fired by now; the new message must survive it
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, msgCreated, a.State().Success)

	require.Eventually(t, func() bool {
		return a.State().Success == ""
	}, time.Second, 5*time.Millisecond)
}

func TestClose_CancelsDismissal(t *testing.T) {
	api := &fakeAPI{getAllErr: errors.New("boom")}
	a := NewApp(api, always(true), logging.NewNop(), WithMessageTTL(20*time.Millisecond))

	a.Mount(context.Background())
	a.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "boom", a.State().Error)
}

func TestRender(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(t, api, always(true))

	var buf bytes.Buffer
	require.NoError(t, a.Render(&buf))
	assert.Contains(t, buf.String(), "Add New User")
	assert.Contains(t, buf.String(), "[Add User]")
	assert.NotContains(t, buf.String(), "[Cancel]")
	assert.Contains(t, buf.String(), emptyText)

	api.users = []userapi.User{{ID: 3, Name: "Ann", Email: "ann@x.com"}}
	a.Mount(context.Background())
	a.Edit(api.users[0])

	buf.Reset()
	require.NoError(t, a.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "Edit User")
	assert.Contains(t, out, "[Update User] [Cancel]")
	assert.Contains(t, out, "ID: 3")
	assert.Contains(t, out, "ann@x.com")
	assert.NotContains(t, out, emptyText)
}

func TestRenderList_Loading(t *testing.T) {
	var b strings.Builder
	renderList(&b, []userapi.User{{ID: 1, Name: "Ann"}}, true)

	assert.Contains(t, b.String(), loadingText)
	assert.NotContains(t, b.String(), "ID: 1")
}
