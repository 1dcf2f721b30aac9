package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"movitv/internal/server"
	"movitv/internal/shared"
)

// AuthLogin exchanges email/password credentials for a session and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("logging in", "email", email)

	sess, err := r.catalog.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.sessions.Login(sess.Token, sess.UserID)

	r.writePlain("✓ Logged in\n")
	return r.writePlain("You can now use: movitv bookmark list\n")
}

// AuthRegister creates an account and persists its session.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("registering account", "email", email)

	sess, err := r.catalog.Register(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.sessions.Login(sess.Token, sess.UserID)

	return r.writePlain("✓ Account created and logged in\n")
}

// AuthGoogle performs the browser-based Google sign-in flow.
//
// Starts a local HTTP server, opens the browser at the catalog's Google
// entry point, and persists the session carried by the callback payload.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	state := shared.GenerateID()
	redirectURI := fmt.Sprintf("http://%s/callback?state=%s", r.config.Server.Addr(), state)
	authURL := r.catalog.GoogleAuthURL(redirectURI)

	callbackHandler := server.NewCallbackHandler(state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(callbackHandler)

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting sign-in callback server at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google sign-in...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for sign-in (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: sign-in timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	r.sessions.LoginSession(result.Session)

	r.writePlainln("✓ Signed in with Google")
	if result.Session.UserName != "" {
		r.writePlain("Welcome, %s\n", result.Session.UserName)
	}
	return nil
}

// AuthLogout clears every persisted session field.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.sessions.Logout()
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus shows the stored session state without touching the network.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	sess := r.sessions.Current()

	if !sess.IsAuthenticated() {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in\n")
	r.writePlain("User ID: %s\n", sess.UserID)
	if sess.UserName != "" {
		r.writePlain("Name: %s\n", sess.UserName)
	}
	if sess.UserEmail != "" {
		r.writePlain("Email: %s\n", sess.UserEmail)
	}
	return nil
}
