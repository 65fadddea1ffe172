package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dkasparas/autonuoma/config"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/dkasparas/autonuoma/session"
	"github.com/gin-gonic/gin"
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const sessionCookie = "autonuoma_session"

// authenticateUser checks the operator credentials against the config.
func authenticateUser(username, password string) bool {
	settings := config.GetSettingsGeneral()
	if settings.WebAdminUser == "" || settings.WebAdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(settings.WebAdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(settings.WebAdminPassword)) == 1
	return userOK && passOK
}

// requireAuth guards the admin pages behind a live session.
func (s *Server) requireAuth(ctx *gin.Context) {
	sessionID, err := ctx.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		redirectToLogin(ctx)
		return
	}
	sess, ok := s.Sessions.Get(sessionID)
	if !ok {
		redirectToLogin(ctx)
		return
	}
	ctx.Set("session", sess)
	ctx.Next()
}

// requireCSRF rejects state-changing admin requests without the session's
// CSRF token in header or form field.
func (s *Server) requireCSRF(ctx *gin.Context) {
	switch ctx.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		ctx.Next()
		return
	}
	sess := currentSession(ctx)
	if sess == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	token := ctx.GetHeader("X-CSRF-Token")
	if token == "" {
		token = ctx.PostForm("csrf_token")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRFToken)) != 1 {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid csrf token"})
		return
	}
	ctx.Next()
}

func currentSession(ctx *gin.Context) *session.Session {
	val, ok := ctx.Get("session")
	if !ok {
		return nil
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

func redirectToLogin(ctx *gin.Context) {
	if strings.Contains(ctx.GetHeader("Accept"), "application/json") {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	ctx.Redirect(http.StatusFound, "/login")
	ctx.Abort()
}

// loginPage renders the login form.
func (s *Server) loginPage(ctx *gin.Context) {
	failed := ctx.Query("failed") != ""
	renderPage(ctx, loginForm(failed))
}

func loginForm(failed bool) gomponents.Node {
	var alert gomponents.Node
	if failed {
		alert = html.Div(
			html.Class("alert alert-danger"),
			gomponents.Text("Neteisingi prisijungimo duomenys"),
		)
	}
	return html.Div(
		html.Class("container mt-5"),
		html.Div(
			html.Class("row justify-content-center"),
			html.Div(
				html.Class("col-md-4"),
				html.H3(gomponents.Text("Autonuoma")),
				alert,
				html.Form(
					html.Method("post"),
					html.Action("/login"),
					html.Div(
						html.Class("mb-3"),
						html.Label(html.Class("form-label"), html.For("username"), gomponents.Text("Vartotojas")),
						html.Input(html.Type("text"), html.Class("form-control"), html.Name("username"), html.Required()),
					),
					html.Div(
						html.Class("mb-3"),
						html.Label(html.Class("form-label"), html.For("password"), gomponents.Text("Slaptazodis")),
						html.Input(html.Type("password"), html.Class("form-control"), html.Name("password"), html.Required()),
					),
					html.Button(html.Type("submit"), html.Class("btn btn-primary w-100"), gomponents.Text("Prisijungti")),
				),
			),
		),
	)
}

// handleLogin validates the credentials and starts a session.
func (s *Server) handleLogin(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")
	if !authenticateUser(username, password) {
		logger.Logtype("warn").Str("user", username).Str("client_ip", ctx.ClientIP()).Msg("failed login")
		ctx.Redirect(http.StatusFound, "/login?failed=1")
		return
	}
	sess := s.Sessions.Create(username)
	maxAge := int(config.GetSettingsGeneral().SessionHours) * 3600
	ctx.SetCookie(sessionCookie, sess.ID, maxAge, "/", "", false, true)
	logger.Logtype("info").Str("user", username).Msg("login")
	ctx.Redirect(http.StatusFound, "/admin")
}

// handleLogout drops the session and clears the cookie.
func (s *Server) handleLogout(ctx *gin.Context) {
	if sessionID, err := ctx.Cookie(sessionCookie); err == nil && sessionID != "" {
		s.Sessions.Delete(sessionID)
	}
	ctx.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/login")
}
