package web

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"clubhouse/internal/adapters/email"
	"clubhouse/internal/adapters/http/middleware"
	accountStore "clubhouse/internal/adapters/storage/account"
	applicationStore "clubhouse/internal/adapters/storage/application"
	fixtureStore "clubhouse/internal/adapters/storage/fixture"
	noticeStore "clubhouse/internal/adapters/storage/notice"
	playerStore "clubhouse/internal/adapters/storage/player"
	registrationStore "clubhouse/internal/adapters/storage/registration"
	"clubhouse/internal/application/projections"
	domainAccount "clubhouse/internal/domain/account"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	ApplicationStore  applicationStore.Store
	RegistrationStore registrationStore.Store
	PlayerStore       playerStore.Store
	FixtureStore      fixtureStore.Store
	NoticeStore       noticeStore.Store
}

// loadCSRFKey reads the CSRF secret from CLUBHOUSE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUBHOUSE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUBHOUSE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLUBHOUSE_ENV") == "production" {
		log.Fatal("CLUBHOUSE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CLUBHOUSE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// baseAddress is the externally visible address used in email links.
var baseAddress = "http://localhost:8080"

// uploadDir is where registration attachments are stored.
var uploadDir = "uploads"

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// SetBaseAddress sets the externally visible address used in email links.
func SetBaseAddress(addr string) {
	if addr != "" {
		baseAddress = addr
	}
}

// SetUploadDir sets the directory for registration attachments.
func SetUploadDir(dir string) {
	if dir != "" {
		uploadDir = dir
	}
}

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// navQuery builds the navigation query from the request's session, if any.
func navQuery(r *http.Request) projections.GetNavigationQuery {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return projections.GetNavigationQuery{}
	}
	return projections.GetNavigationQuery{
		Authenticated: true,
		FirstName:     sess.FirstName,
		Role:          domainAccount.Role(sess.Role),
		Status:        sess.Status,
		SelectionFlag: sess.SelectionFlag,
	}
}

// requireReachable blocks requests whose path the current identity's
// navigation does not expose. The link set is recomputed per request, never
// cached, so a session updated mid-flight gates correctly.
func requireReachable(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := navQuery(r)
		if !projections.CanReach(query, path) {
			if !query.Authenticated {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		h(w, r)
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	nav := projections.QueryGetNavigation(navQuery(r))

	funcMap := template.FuncMap{
		"csrfToken":  func() string { return csrf.Token(r) },
		"navLinks":   func() []projections.NavLink { return nav.Links },
		"welcome":    func() string { return nav.Welcome },
		"showLogout": func() bool { return nav.ShowLogout },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"formatDate": func(t time.Time) string { return t.Format("Mon 2 Jan 2006") },
		"formatTime": func(t time.Time) string { return t.Format("15:04") },
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// saveAttachment writes an uploaded file under uploadDir and returns its
// relative storage path.
func saveAttachment(name string, src io.Reader) (string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CLUBHOUSE_ENV") == "production"
	if emailSender == nil {
		emailSender = email.NewNoopSender()
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RequestLogger -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.RequestLogger,
	)
}
