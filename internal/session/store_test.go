package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdeck/staffdeck/internal/api"
	"github.com/staffdeck/staffdeck/internal/errors"
	"github.com/staffdeck/staffdeck/internal/notify"
)

// fakeAuthAPI scripts the session store's API dependency
type fakeAuthAPI struct {
	loginResult *api.LoginResult
	loginErr    error
	meUser      *api.User
	meErr       error
	updateUser  *api.User
	updateErr   error
	passwordErr error

	loginCalls int
	meCalls    int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*api.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeAuthAPI) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	return f.updateUser, f.updateErr
}

func (f *fakeAuthAPI) ChangePassword(ctx context.Context, current, next string) error {
	return f.passwordErr
}

func adaUser() *api.User {
	return &api.User{
		ID:        "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      api.RoleAdmin,
		IsActive:  true,
	}
}

func newTestStore(t *testing.T, tokens TokenStore, client AuthAPI) (*Store, *notify.Recorder) {
	t.Helper()
	recorder := notify.NewRecorder()
	store := NewStore(tokens, WithNotifier(recorder))
	store.Bind(client)
	return store, recorder
}

func TestStore_StartsInitializing(t *testing.T) {
	store, _ := newTestStore(t, NewMemoryTokenStore(""), &fakeAuthAPI{})
	assert.Equal(t, StateInitializing, store.State())
	assert.Nil(t, store.CurrentUser())
	assert.False(t, store.IsAuthenticated())
}

func TestRestore_NoToken(t *testing.T) {
	client := &fakeAuthAPI{}
	store, _ := newTestStore(t, NewMemoryTokenStore(""), client)

	store.Restore(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	// No "who am I" request without a token
	assert.Zero(t, client.meCalls)
}

func TestRestore_ValidToken(t *testing.T) {
	client := &fakeAuthAPI{meUser: adaUser()}
	tokens := NewMemoryTokenStore("stored-token")
	store, _ := newTestStore(t, tokens, client)

	store.Restore(context.Background())

	assert.Equal(t, StateAuthenticated, store.State())
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "ada@example.com", store.CurrentUser().Email)
	assert.Equal(t, "stored-token", store.Token())
}

func TestRestore_RejectedTokenIsDiscarded(t *testing.T) {
	client := &fakeAuthAPI{meErr: errors.New(errors.ErrCodeAuthSessionExpired, "token expired")}
	tokens := NewMemoryTokenStore("stale-token")
	store, _ := newTestStore(t, tokens, client)

	store.Restore(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, store.Token())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestLogin_Success(t *testing.T) {
	client := &fakeAuthAPI{loginResult: &api.LoginResult{User: *adaUser(), Token: "fresh-token"}}
	tokens := NewMemoryTokenStore("")
	store, recorder := newTestStore(t, tokens, client)
	store.Restore(context.Background())

	res := store.Login(context.Background(), "ada@example.com", "secret")

	assert.True(t, res.Success)
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "fresh-token", store.Token())

	// Token is persisted, and matches what outbound requests will attach
	stored, _ := tokens.Load()
	assert.Equal(t, store.Token(), stored)

	assert.Contains(t, recorder.Successes(), "Login successful!")
}

func TestLogin_Failure(t *testing.T) {
	client := &fakeAuthAPI{loginErr: errors.New(errors.ErrCodeServerRejected, "Invalid email or password")}
	tokens := NewMemoryTokenStore("")
	store, _ := newTestStore(t, tokens, client)
	store.Restore(context.Background())

	res := store.Login(context.Background(), "ada@example.com", "wrong")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid email or password", res.Message)
	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, store.Token())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestLogin_FailureFallbackMessage(t *testing.T) {
	client := &fakeAuthAPI{loginErr: errors.New(errors.ErrCodeTransport, "connection refused")}
	store, _ := newTestStore(t, NewMemoryTokenStore(""), client)
	store.Restore(context.Background())

	res := store.Login(context.Background(), "ada@example.com", "secret")

	assert.False(t, res.Success)
	// Transport details are not shown inline; the generic fallback is
	assert.Equal(t, "Login failed. Please try again.", res.Message)
}

func TestLogin_WhileAuthenticated(t *testing.T) {
	client := &fakeAuthAPI{meUser: adaUser()}
	store, _ := newTestStore(t, NewMemoryTokenStore("tok"), client)
	store.Restore(context.Background())
	require.Equal(t, StateAuthenticated, store.State())

	res := store.Login(context.Background(), "ada@example.com", "secret")
	assert.False(t, res.Success)
	assert.Zero(t, client.loginCalls)
}

func TestLogout_IsIdempotentAndLocal(t *testing.T) {
	client := &fakeAuthAPI{meUser: adaUser()}
	tokens := NewMemoryTokenStore("tok")
	store, _ := newTestStore(t, tokens, client)
	store.Restore(context.Background())
	require.True(t, store.IsAuthenticated())

	store.Logout()
	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, store.Token())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)

	// Second logout is a no-op that must not fail
	store.Logout()
	assert.Equal(t, StateAnonymous, store.State())
}

func TestAuthenticatedFlagTracksHistory(t *testing.T) {
	client := &fakeAuthAPI{loginResult: &api.LoginResult{User: *adaUser(), Token: "tok"}}
	store, _ := newTestStore(t, NewMemoryTokenStore(""), client)
	store.Restore(context.Background())

	assert.False(t, store.IsAuthenticated())

	require.True(t, store.Login(context.Background(), "a", "b").Success)
	assert.True(t, store.IsAuthenticated())

	store.Logout()
	assert.False(t, store.IsAuthenticated())

	require.True(t, store.Login(context.Background(), "a", "b").Success)
	assert.True(t, store.IsAuthenticated())

	store.HandleUnauthorized()
	assert.False(t, store.IsAuthenticated())
}

func TestUpdateProfile_ReplacesWholesale(t *testing.T) {
	updated := adaUser()
	updated.FirstName = "Augusta"
	client := &fakeAuthAPI{meUser: adaUser(), updateUser: updated}
	store, recorder := newTestStore(t, NewMemoryTokenStore("tok"), client)
	store.Restore(context.Background())

	res := store.UpdateProfile(context.Background(), api.ProfileUpdate{FirstName: "Augusta"})

	assert.True(t, res.Success)
	assert.Equal(t, "Augusta", store.CurrentUser().FirstName)
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Contains(t, recorder.Successes(), "Profile updated successfully!")
}

func TestUpdateProfile_FailureLeavesProfile(t *testing.T) {
	client := &fakeAuthAPI{
		meUser:    adaUser(),
		updateErr: errors.New(errors.ErrCodeServerRejected, "Email already in use"),
	}
	store, _ := newTestStore(t, NewMemoryTokenStore("tok"), client)
	store.Restore(context.Background())

	res := store.UpdateProfile(context.Background(), api.ProfileUpdate{Email: "taken@example.com"})

	assert.False(t, res.Success)
	assert.Equal(t, "Email already in use", res.Message)
	assert.Equal(t, "ada@example.com", store.CurrentUser().Email)
	assert.Equal(t, StateAuthenticated, store.State())
}

func TestChangePassword_DoesNotTouchState(t *testing.T) {
	client := &fakeAuthAPI{meUser: adaUser()}
	store, _ := newTestStore(t, NewMemoryTokenStore("tok"), client)
	store.Restore(context.Background())
	before := store.CurrentUser()

	res := store.ChangePassword(context.Background(), "old", "new")
	assert.True(t, res.Success)
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, before, store.CurrentUser())

	client.passwordErr = errors.New(errors.ErrCodeServerRejected, "Current password is incorrect")
	res = store.ChangePassword(context.Background(), "bad", "new")
	assert.False(t, res.Success)
	assert.Equal(t, "Current password is incorrect", res.Message)
	assert.Equal(t, StateAuthenticated, store.State())
}

func TestHandleUnauthorized_ForcesAnonymousOnce(t *testing.T) {
	client := &fakeAuthAPI{meUser: adaUser()}
	tokens := NewMemoryTokenStore("tok")
	var redirects int
	recorder := notify.NewRecorder()
	store := NewStore(tokens,
		WithNotifier(recorder),
		WithForcedLogoutHandler(func() { redirects++ }),
	)
	store.Bind(client)
	store.Restore(context.Background())
	require.True(t, store.IsAuthenticated())

	store.HandleUnauthorized()

	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, store.Token())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
	assert.Equal(t, 1, redirects)
	assert.Len(t, recorder.Errors(), 1)

	// A second 401 with no session left is absorbed silently
	store.HandleUnauthorized()
	assert.Equal(t, 1, redirects)
	assert.Len(t, recorder.Errors(), 1)
}

func TestHandleUnauthorized_ConcurrentCallsCollapse(t *testing.T) {
	client := &fakeAuthAPI{meUser: adaUser()}
	var count int
	var mu sync.Mutex
	store := NewStore(NewMemoryTokenStore("tok"),
		WithForcedLogoutHandler(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}),
	)
	store.Bind(client)
	store.Restore(context.Background())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.HandleUnauthorized()
		}()
	}
	wg.Wait()

	assert.Equal(t, StateAnonymous, store.State())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	client := &fakeAuthAPI{loginResult: &api.LoginResult{User: *adaUser(), Token: "tok"}}
	store, _ := newTestStore(t, NewMemoryTokenStore(""), client)

	var seen []State
	unsubscribe := store.Subscribe(func(s State) { seen = append(seen, s) })

	store.Restore(context.Background())
	store.Login(context.Background(), "a", "b")
	store.Logout()

	assert.Equal(t, []State{
		StateAnonymous,      // restore with no token
		StateTransitioning,  // login start
		StateAuthenticated,  // login success
		StateAnonymous,      // logout
	}, seen)

	unsubscribe()
	store.Login(context.Background(), "a", "b")
	assert.Len(t, seen, 4)
}
