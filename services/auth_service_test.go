package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityStub mimics the provider: one canned account, provider-style
// error codes otherwise.
func identityStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req identityRequest
		require.NoError(t, decodeJSON(r, &req))

		fail := func(code string) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":{"message":%q}}`, code)
		}

		switch {
		case strings.Contains(r.URL.Path, "accounts:signUp"):
			switch {
			case req.Email == "taken@example.com":
				fail("EMAIL_EXISTS")
			case !strings.Contains(req.Email, "@"):
				fail("INVALID_EMAIL")
			case len(req.Password) < 6:
				fail("WEAK_PASSWORD : Password should be at least 6 characters")
			default:
				fmt.Fprintf(w, `{"localId":"uid-123","email":%q,"idToken":"tok"}`, req.Email)
			}
		case strings.Contains(r.URL.Path, "accounts:signInWithPassword"):
			if req.Email == "me@example.com" && req.Password == "secret123" {
				fmt.Fprint(w, `{"localId":"uid-123","email":"me@example.com","idToken":"tok"}`)
			} else {
				fail("INVALID_LOGIN_CREDENTIALS")
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func TestSignUpSuccess(t *testing.T) {
	srv := identityStub(t)
	defer srv.Close()

	gw := NewIdentityGateway("key", WithIdentityBaseURL(srv.URL))
	id, err := gw.SignUp(context.Background(), "new@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "uid-123", id.UID)
	assert.Equal(t, "new@example.com", id.Email)
}

func TestSignUpErrorMapping(t *testing.T) {
	srv := identityStub(t)
	defer srv.Close()
	gw := NewIdentityGateway("key", WithIdentityBaseURL(srv.URL))

	tests := []struct {
		name     string
		email    string
		password string
		kind     AuthErrorKind
		message  string
	}{
		{"email taken", "taken@example.com", "secret123", AuthEmailInUse, "Email này đã được sử dụng. Vui lòng đăng nhập."},
		{"bad email", "not-an-email", "secret123", AuthInvalidEmail, "Địa chỉ email không hợp lệ."},
		{"weak password", "new@example.com", "123", AuthWeakPassword, "Mật khẩu phải có ít nhất 6 ký tự."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gw.SignUp(context.Background(), tt.email, tt.password)
			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.kind, authErr.Kind)
			assert.Equal(t, tt.message, authErr.Message)
		})
	}
}

func TestSignInWrongPassword(t *testing.T) {
	srv := identityStub(t)
	defer srv.Close()
	gw := NewIdentityGateway("key", WithIdentityBaseURL(srv.URL))

	_, err := gw.SignIn(context.Background(), "me@example.com", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthInvalidCredential, authErr.Kind)
	assert.Equal(t, "Email hoặc mật khẩu không chính xác.", authErr.Message)
}

func TestSignInProviderUnreachable(t *testing.T) {
	srv := identityStub(t)
	srv.Close()
	gw := NewIdentityGateway("key", WithIdentityBaseURL(srv.URL))

	_, err := gw.SignIn(context.Background(), "me@example.com", "secret123")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, AuthUnknown, authErr.Kind)
}

func TestOnAuthChange(t *testing.T) {
	srv := identityStub(t)
	defer srv.Close()
	gw := NewIdentityGateway("key", WithIdentityBaseURL(srv.URL))

	var mu sync.Mutex
	var states []*Identity
	cancel := gw.OnAuthChange(func(id *Identity) {
		mu.Lock()
		states = append(states, id)
		mu.Unlock()
	})

	// fires immediately with the current (signed-out) state
	mu.Lock()
	require.Len(t, states, 1)
	assert.Nil(t, states[0])
	mu.Unlock()

	_, err := gw.SignIn(context.Background(), "me@example.com", "secret123")
	require.NoError(t, err)

	mu.Lock()
	require.Len(t, states, 2)
	require.NotNil(t, states[1])
	assert.Equal(t, "uid-123", states[1].UID)
	mu.Unlock()

	gw.SignOut()
	mu.Lock()
	require.Len(t, states, 3)
	assert.Nil(t, states[2])
	mu.Unlock()

	// after cancel nothing more is delivered
	cancel()
	_, err = gw.SignIn(context.Background(), "me@example.com", "secret123")
	require.NoError(t, err)
	mu.Lock()
	assert.Len(t, states, 3)
	mu.Unlock()
}
