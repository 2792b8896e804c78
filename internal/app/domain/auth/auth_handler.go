package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-shopfront/internal/app/domain"
	"github.com/FACorreiaa/go-shopfront/internal/app/models"
	"github.com/FACorreiaa/go-shopfront/internal/app/pages"
	"github.com/FACorreiaa/go-shopfront/internal/app/session"
)

type AuthHandlers struct {
	*domain.BaseHandler
	authService AuthService
	logger      *zap.Logger
}

func NewAuthHandlers(base *domain.BaseHandler, authService AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		BaseHandler: base,
		authService: authService,
		logger:      logger,
	}
}

// ShowLogin renders the login form, or bounces straight to the account
// dashboard when the session is already authenticated.
func (h *AuthHandlers) ShowLogin(c *gin.Context) {
	st := session.FromGin(c)
	if st != nil && st.IsLoggedIn() {
		c.Redirect(http.StatusFound, "/accounts/dashboard")
		return
	}
	h.RenderPage(c, "Login", "", pages.LoginPage())
}

// Login processes the login form. Every failure path queues a flash and
// redirects back to the form, so the notice survives the redirect and is
// drained exactly once by the form's render.
func (h *AuthHandlers) Login(c *gin.Context) {
	h.logger.Info("Login attempt", zap.String("remote_addr", c.Request.RemoteAddr))

	st := session.FromGin(c)

	email := c.PostForm("email")
	if email == "" {
		// The login form historically posted the field as "username".
		email = c.PostForm("username")
	}
	password := c.PostForm("password")

	if email == "" || password == "" {
		st.AddFlash(session.FlashError, "Email and password are required")
		c.Redirect(http.StatusFound, "/accounts/login")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthenticated) {
			st.AddFlash(session.FlashError, "Invalid email or password")
			c.Redirect(http.StatusFound, "/accounts/login")
			return
		}
		h.RenderServerError(c, err)
		return
	}

	st.Login(session.UserSnapshot{ID: user.ID, Email: user.Email})
	st.AddFlash(session.FlashSuccess, "You are now logged in")

	h.logger.Info("Successful login", zap.String("user_id", user.ID))
	c.Redirect(http.StatusFound, "/accounts/dashboard")
}

// ShowRegister renders the registration form.
func (h *AuthHandlers) ShowRegister(c *gin.Context) {
	h.RenderPage(c, "Register", "", pages.RegisterPage())
}

// Register processes the registration form. Validation reports one flash per
// failed rule. Success does not log the user in; they land on the login form
// with a success notice.
func (h *AuthHandlers) Register(c *gin.Context) {
	h.logger.Info("Registration attempt", zap.String("remote_addr", c.Request.RemoteAddr))

	st := session.FromGin(c)

	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	userID, issues, err := h.authService.Register(c.Request.Context(), email, password, confirm)
	if err != nil {
		h.RenderServerError(c, err)
		return
	}
	if len(issues) > 0 {
		for _, issue := range issues {
			st.AddFlash(session.FlashError, issue)
		}
		c.Redirect(http.StatusFound, "/accounts/register")
		return
	}

	st.AddFlash(session.FlashSuccess, "Account created. You can log in now.")
	h.logger.Info("Successful registration", zap.String("user_id", userID))
	c.Redirect(http.StatusFound, "/accounts/login")
}

// Logout destroys the session record and replaces it with a fresh anonymous
// one before queuing the farewell notice, so the notice is guaranteed to
// survive to the next request. Logging out while anonymous is a no-op.
func (h *AuthHandlers) Logout(c *gin.Context) {
	st := session.FromGin(c)
	if !st.IsLoggedIn() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	userID := ""
	if snap := st.User(); snap != nil {
		userID = snap.ID
	}

	if err := st.Reset(c); err != nil {
		h.RenderServerError(c, err)
		return
	}
	st.AddFlash(session.FlashSuccess, "You have been logged out")

	h.logger.Info("User logout", zap.String("user_id", userID))
	c.Redirect(http.StatusFound, "/")
}

// AccountDashboard renders the account overview. Reached only through the
// RequireAuthenticated guard.
func (h *AuthHandlers) AccountDashboard(c *gin.Context) {
	st := session.FromGin(c)
	snap := st.User()
	if snap == nil {
		// Guard bug if this ever fires; the invariant says logged-in
		// records always carry a snapshot.
		h.RenderServerError(c, models.ErrUnauthenticated)
		return
	}

	user := models.User{ID: snap.ID, Email: snap.Email}
	h.RenderPage(c, "Account Dashboard", "", pages.AccountDashboardPage(user, st.LoginAt()))
}
