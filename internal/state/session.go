package state

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/session"
)

const (
	msgLoginFailed  = "Invalid username or password"
	msgLoginError   = "An error occurred during login"
	msgSignupFailed = "Signup failed"
	msgSignupError  = "An error occurred during signup"
)

// AuthResult is the outcome of a login or signup attempt.
type AuthResult struct {
	OK      bool
	Token   string
	Message string // user-facing explanation when OK is false
	Err     error
}

// Login exchanges credentials for a token. Only a non-empty token
// authenticates; the session is persisted and set in one transition.
func (s *Store) Login(ctx context.Context, creds api.Credentials) AuthResult {
	if s.backend == nil {
		return AuthResult{Message: msgLoginError, Err: ErrNoBackend}
	}
	token := s.tasks.begin(taskSession)
	adminToken, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.logger.Error("login failed", zap.Error(err), zap.String("username", creds.Username))
		return AuthResult{Message: failureMessage(err, msgLoginError), Err: err}
	}
	return s.authenticate("login", token, adminToken, msgLoginFailed)
}

// Signup registers a user and authenticates with the issued token. A
// server-provided failure message is surfaced verbatim.
func (s *Store) Signup(ctx context.Context, data api.SignupData) AuthResult {
	if s.backend == nil {
		return AuthResult{Message: msgSignupError, Err: ErrNoBackend}
	}
	token := s.tasks.begin(taskSession)
	adminToken, err := s.backend.Signup(ctx, data)
	if err != nil {
		s.logger.Error("signup failed", zap.Error(err), zap.String("username", data.Username))
		return AuthResult{Message: failureMessage(err, msgSignupError), Err: err}
	}
	return s.authenticate("signup", token, adminToken, msgSignupFailed)
}

func (s *Store) authenticate(action string, task taskToken, adminToken, emptyMsg string) AuthResult {
	if adminToken == "" {
		s.logger.Warn("auth exchange returned no token", zap.String("action", action))
		return AuthResult{Message: emptyMsg}
	}

	granted := session.Session{
		IsAuthenticated: true,
		AdminToken:      adminToken,
		UserRole:        RoleFromToken(adminToken),
	}
	_, applied := s.dispatchTask(action, taskSession, task, func(prev Snapshot) Snapshot {
		if err := s.storage.Save(granted); err != nil {
			s.logger.Warn("session persist failed", zap.Error(err))
		}
		next := prev
		next.Session = granted
		return next
	})
	if !applied {
		return AuthResult{Message: ErrSuperseded.Error(), Err: ErrSuperseded}
	}
	s.logger.Info("authenticated", zap.String("action", action), zap.String("role", granted.UserRole))
	return AuthResult{OK: true, Token: adminToken}
}

// Logout clears the session in storage and memory, closes the admin panel and
// discards any login still in flight. No network call is made.
func (s *Store) Logout() Snapshot {
	return s.dispatch("logout", func(prev Snapshot) Snapshot {
		s.tasks.invalidate(taskSession)
		if err := s.storage.Clear(); err != nil {
			s.logger.Warn("session clear failed", zap.Error(err))
		}
		next := prev
		next.Session = session.Session{}
		next.Panels.AdminPanelOpen = false
		return next
	})
}

// RoleFromToken reads the "role" claim of a JWT without verifying it. Opaque
// tokens have no role.
func RoleFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

func failureMessage(err error, fallback string) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	return fallback
}
