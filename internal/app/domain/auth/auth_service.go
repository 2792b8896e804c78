package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
	"github.com/FACorreiaa/go-shopfront/internal/observability/metrics"
)

const minPasswordLength = 8

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the business logic contract for login and registration.
type AuthService interface {
	// Login validates credentials. The error for an unknown email and for a
	// wrong password is the same models.ErrUnauthenticated wrap, so callers
	// cannot enumerate accounts.
	Login(ctx context.Context, email, password string) (*models.UserAuth, error)
	// Register validates all rules and reports every failure, not just the
	// first. A non-empty issues slice means no user was created.
	Register(ctx context.Context, email, password, confirmPassword string) (userID string, issues []string, err error)
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	logger *zap.Logger
	repo   AuthRepo
}

// NewAuthService creates a new authentication service instance.
func NewAuthService(repo AuthRepo, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{logger: logger, repo: repo}
}

// Login validates credentials against the credential store.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.UserAuth, error) {
	l := s.logger.With(zap.String("method", "Login"))
	l.Debug("Attempting login")

	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.countAuthAttempt(ctx, "login", "failure")
			// Don't reveal whether it was the email or the password
			return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("credential store error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		l.Warn("Password comparison failed", zap.String("user_id", user.ID))
		s.countAuthAttempt(ctx, "login", "failure")
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	l.Info("Login successful", zap.String("user_id", user.ID))
	s.countAuthAttempt(ctx, "login", "success")
	return user, nil
}

// Register validates the form and creates the user on success. It never
// changes login state; callers decide what to do with the fresh account.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, confirmPassword string) (string, []string, error) {
	l := s.logger.With(zap.String("method", "Register"))
	l.Debug("Attempting registration")

	ctx, span := otel.Tracer("shopfront").Start(ctx, "AuthService.Register",
		trace.WithAttributes(attribute.String("auth.operation", "register")))
	defer span.End()

	email = strings.TrimSpace(email)
	var issues []string

	emailOK := validEmail(email)
	if !emailOK {
		issues = append(issues, "A valid email address is required")
	}
	if len(password) < minPasswordLength {
		issues = append(issues, fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}
	if password != confirmPassword {
		issues = append(issues, "Password and confirmation do not match")
	}
	if emailOK {
		exists, err := s.repo.EmailExists(ctx, email)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Credential store error")
			return "", nil, fmt.Errorf("credential store error: %w", err)
		}
		if exists {
			issues = append(issues, "An account with this email already exists")
		}
	}

	if len(issues) > 0 {
		span.SetStatus(codes.Ok, "Validation failed")
		s.countAuthAttempt(ctx, "register", "validation_failure")
		return "", issues, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Password hashing failed")
		return "", nil, fmt.Errorf("could not process password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, email, string(hashed))
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			// Lost the insert race against a concurrent registration;
			// same outcome as the pre-check catching it.
			s.countAuthAttempt(ctx, "register", "validation_failure")
			return "", []string{"An account with this email already exists"}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository registration failed")
		return "", nil, fmt.Errorf("registration failed: %w", err)
	}

	l.Info("Registration successful", zap.String("user_id", userID))
	span.SetStatus(codes.Ok, "User registered")
	s.countAuthAttempt(ctx, "register", "success")
	return userID, nil, nil
}

func (s *AuthServiceImpl) countAuthAttempt(ctx context.Context, operation, outcome string) {
	if app := metrics.Get(); app != nil {
		app.AuthAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
