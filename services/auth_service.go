package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// AuthErrorKind names the provider rejections the UI knows how to phrase.
type AuthErrorKind string

const (
	AuthEmailInUse        AuthErrorKind = "email-already-in-use"
	AuthInvalidEmail      AuthErrorKind = "invalid-email"
	AuthWeakPassword      AuthErrorKind = "weak-password"
	AuthInvalidCredential AuthErrorKind = "invalid-credential"
	AuthUnknown           AuthErrorKind = "generic-failure"
)

// authMessages maps each kind to the message shown inline on the auth form.
var authMessages = map[AuthErrorKind]string{
	AuthEmailInUse:        "Email này đã được sử dụng. Vui lòng đăng nhập.",
	AuthInvalidEmail:      "Địa chỉ email không hợp lệ.",
	AuthWeakPassword:      "Mật khẩu phải có ít nhất 6 ký tự.",
	AuthInvalidCredential: "Email hoặc mật khẩu không chính xác.",
	AuthUnknown:           "Đã xảy ra lỗi. Vui lòng thử lại.",
}

// AuthError is a provider rejection, already localized. Recoverable by
// retrying with different input.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s", e.Kind)
}

func newAuthError(kind AuthErrorKind) *AuthError {
	return &AuthError{Kind: kind, Message: authMessages[kind]}
}

// Identity is the signed-in account as the provider reports it.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

const defaultIdentityBaseURL = "https://identitytoolkit.googleapis.com/v1"

// ── Wire types (Identity Toolkit REST API) ───────────────────────

type identityRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identityResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type identityErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ── Gateway ──────────────────────────────────────────────────────

// IdentityOption configures the gateway.
type IdentityOption func(*IdentityGateway)

// WithIdentityBaseURL points the gateway at a different endpoint (tests).
func WithIdentityBaseURL(base string) IdentityOption {
	return func(g *IdentityGateway) { g.baseURL = strings.TrimRight(base, "/") }
}

// IdentityGateway delegates account management to the external identity
// provider and broadcasts auth-state changes to subscribers. Account records
// never live in this process.
type IdentityGateway struct {
	client  *http.Client
	baseURL string
	apiKey  string

	mu      sync.Mutex
	current *Identity
	subs    map[int]func(*Identity)
	nextSub int
}

func NewIdentityGateway(apiKey string, opts ...IdentityOption) *IdentityGateway {
	g := &IdentityGateway{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultIdentityBaseURL,
		apiKey:  apiKey,
		subs:    make(map[int]func(*Identity)),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *IdentityGateway) call(ctx context.Context, action string, in identityRequest) (*identityResponse, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("identity: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts:%s?key=%s", g.baseURL, action, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("identity: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, newAuthError(AuthUnknown)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newAuthError(AuthUnknown)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapProviderError(respBytes)
	}

	var out identityResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, newAuthError(AuthUnknown)
	}
	return &out, nil
}

// mapProviderError folds the provider's error codes into the five kinds the
// auth screen localizes.
func mapProviderError(body []byte) *AuthError {
	var out identityErrorResponse
	_ = json.Unmarshal(body, &out)

	code := out.Error.Message
	switch {
	case code == "EMAIL_EXISTS":
		return newAuthError(AuthEmailInUse)
	case code == "INVALID_EMAIL" || code == "MISSING_EMAIL":
		return newAuthError(AuthInvalidEmail)
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return newAuthError(AuthWeakPassword)
	case code == "INVALID_LOGIN_CREDENTIALS" || code == "INVALID_PASSWORD" || code == "EMAIL_NOT_FOUND":
		return newAuthError(AuthInvalidCredential)
	default:
		return newAuthError(AuthUnknown)
	}
}

// SignUp creates an account with the provider and signs it in.
func (g *IdentityGateway) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	out, err := g.call(ctx, "signUp", identityRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}
	id := &Identity{UID: out.LocalID, Email: out.Email}
	g.setCurrent(id)
	return id, nil
}

// SignIn checks the credentials with the provider.
func (g *IdentityGateway) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	out, err := g.call(ctx, "signInWithPassword", identityRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}
	id := &Identity{UID: out.LocalID, Email: out.Email}
	g.setCurrent(id)
	return id, nil
}

// SignOut clears the current identity and tells subscribers.
func (g *IdentityGateway) SignOut() {
	g.setCurrent(nil)
}

func (g *IdentityGateway) setCurrent(id *Identity) {
	g.mu.Lock()
	g.current = id
	handlers := make([]func(*Identity), 0, len(g.subs))
	for _, h := range g.subs {
		handlers = append(handlers, h)
	}
	g.mu.Unlock()

	// Outside the lock so a handler can call back into the gateway.
	for _, h := range handlers {
		h(id)
	}
}

// OnAuthChange registers handler for auth-state changes and invokes it once
// with the current state, like the provider SDKs do. The returned cancel
// func removes the subscription; call it exactly once at teardown.
func (g *IdentityGateway) OnAuthChange(handler func(*Identity)) (cancel func()) {
	g.mu.Lock()
	token := g.nextSub
	g.nextSub++
	g.subs[token] = handler
	current := g.current
	g.mu.Unlock()

	handler(current)

	return func() {
		g.mu.Lock()
		delete(g.subs, token)
		g.mu.Unlock()
	}
}
