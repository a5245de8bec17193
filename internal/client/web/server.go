// Package web implements the browser front end: a small gin server that
// renders the session controller's view state as HTML pages. The report
// page is print-ready; PDF export is the browser's print function.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixvera/imageproof/internal/client/controller"
	"github.com/pixvera/imageproof/internal/logging"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Server renders ImageProof views over HTTP. All state lives in the
// controller; handlers only translate requests into controller intents
// and redirect to whatever view the resulting state selects.
type Server struct {
	router *gin.Engine
	ctrl   *controller.Controller
	log    logging.Logger
}

func NewServer(ctrl *controller.Controller, log logging.Logger) *Server {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
	}
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl"))

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	s := &Server{router: router, ctrl: ctrl, log: log.With("component", "web")}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/login", s.handleLoginPage)
	s.router.POST("/login", s.handleLogin)
	s.router.GET("/register", s.handleRegisterPage)
	s.router.POST("/register", s.handleRegister)
	s.router.POST("/upload", s.handleUpload)
	s.router.GET("/report", s.handleReportPage)
	s.router.POST("/report", s.handleShowReport)
	s.router.POST("/back", s.handleBack)
	s.router.POST("/reset", s.handleReset)
	s.router.POST("/logout", s.handleLogout)
}

// Handler exposes the underlying http.Handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the UI until the listener fails or the process exits.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.log.Info(ctx, "web UI listening", "addr", addr)
	return s.router.Run(addr)
}
