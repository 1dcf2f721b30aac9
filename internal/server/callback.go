package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"movitv/internal/models"
)

// googlePayload is the URL-encoded JSON document the catalog appends to the
// callback redirect after a Google sign-in.
type googlePayload struct {
	Success bool `json:"success"`
	User    struct {
		GoogleID string `json:"googleId"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Picture  string `json:"picture"`
	} `json:"user"`
}

// CallbackResult contains the result of a Google sign-in flow.
type CallbackResult struct {
	Session models.Session
	err     error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// CallbackHandler terminates the catalog's Google sign-in redirect.
// Implements the Handler interface for registration with a Router.
type CallbackHandler struct {
	state       string
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a callback handler bound to the given state
// token. The state token should be cryptographically random for CSRF
// protection.
func NewCallbackHandler(state string) *CallbackHandler {
	return &CallbackHandler{
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the sign-in callback request.
//
// Validates the state parameter, decodes the user payload into a session,
// and sends the result through the result channel. The google id doubles as
// both token and user id for catalog requests.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	query := r.URL.Query()

	if state := query.Get("state"); state != h.state {
		err := fmt.Errorf("invalid state parameter")
		h.Send(CallbackResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	if auth := query.Get("auth"); auth != "success" {
		err := fmt.Errorf("sign-in failed: auth=%s", auth)
		h.Send(CallbackResult{err: err})
		http.Error(w, "Sign-in failed", http.StatusBadRequest)
		return
	}

	// Query().Get already applied the URL decoding.
	raw := query.Get("userData")
	if raw == "" {
		err := fmt.Errorf("callback is missing the user payload")
		h.Send(CallbackResult{err: err})
		http.Error(w, "Missing user payload", http.StatusBadRequest)
		return
	}

	var payload googlePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		h.Send(CallbackResult{err: fmt.Errorf("malformed user payload: %w", err)})
		http.Error(w, "Malformed user payload", http.StatusBadRequest)
		return
	}
	if !payload.Success || payload.User.GoogleID == "" {
		err := fmt.Errorf("invalid user payload")
		h.Send(CallbackResult{err: err})
		http.Error(w, "Invalid user payload", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{Session: models.Session{
		Token:       payload.User.GoogleID,
		UserID:      payload.User.GoogleID,
		UserName:    payload.User.Name,
		UserEmail:   payload.User.Email,
		UserPicture: payload.User.Picture,
	}})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Sign-in Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #e50914; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Signed In</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// Send sends the callback result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving sign-in completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}
