package web

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/pixvera/imageproof/internal/client/models"
	"github.com/pixvera/imageproof/internal/common"
)

// handleIndex routes the browser to the view the controller state
// selects: anonymous gate, upload form, dashboard or report.
func (s *Server) handleIndex(c *gin.Context) {
	switch s.ctrl.ViewMode() {
	case models.ViewAnonymousGate:
		c.Redirect(http.StatusSeeOther, "/login")
	case models.ViewUpload:
		c.HTML(http.StatusOK, "upload.tmpl", gin.H{
			"Username": s.ctrl.Session().Username,
		})
	case models.ViewDashboard:
		c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
			"Username": s.ctrl.Session().Username,
			"FileName": s.ctrl.FileName(),
			"Result":   s.ctrl.Result(),
		})
	case models.ViewReport:
		c.Redirect(http.StatusSeeOther, "/report")
	}
}

func (s *Server) handleLoginPage(c *gin.Context) {
	if s.ctrl.Session() != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Error": c.Query("error")})
}

func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := s.ctrl.Login(c.Request.Context(), username, password); err != nil {
		c.Redirect(http.StatusSeeOther, "/login?error="+queryEscape(err.Error()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleRegisterPage(c *gin.Context) {
	if s.ctrl.Session() != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "register.tmpl", gin.H{"Error": c.Query("error")})
}

func (s *Server) handleRegister(c *gin.Context) {
	err := s.ctrl.Register(c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password"),
		c.PostForm("confirmPassword"),
	)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/register?error="+queryEscape(err.Error()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// handleUpload receives the image and submits it for analysis. The
// request blocks until the verdict (or error) is folded into state, then
// lands on the dashboard.
func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile(common.ImageFormField)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.log.Error(c.Request.Context(), "failed to open upload", "error", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	defer f.Close()

	// Read one byte past the cap so oversize files fail validation
	// instead of being silently truncated.
	content, err := io.ReadAll(io.LimitReader(f, common.MaxImageBytes+1))
	if err != nil {
		s.log.Error(c.Request.Context(), "failed to read upload", "error", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	s.ctrl.SubmitImage(c.Request.Context(), fh.Filename, content)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleReportPage renders the printable report. When the result is not
// complete the template shows the loading/error fallback instead.
func (s *Server) handleReportPage(c *gin.Context) {
	if s.ctrl.Session() == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if s.ctrl.FileName() == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	result := s.ctrl.Result()
	data := gin.H{
		"Username": s.ctrl.Session().Username,
		"FileName": s.ctrl.FileName(),
		"Result":   result,
	}
	if result.Complete() {
		data["Score"] = int(result.Verdict.Confidence*100 + 0.5)
		data["Level"] = confidenceLevel(result.Verdict.Confidence)
	}
	c.HTML(http.StatusOK, "report.tmpl", data)
}

func (s *Server) handleShowReport(c *gin.Context) {
	s.ctrl.ShowReport()
	c.Redirect(http.StatusSeeOther, "/report")
}

func (s *Server) handleBack(c *gin.Context) {
	s.ctrl.HideReport()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleReset(c *gin.Context) {
	s.ctrl.ResetToUpload()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.ctrl.Logout(c.Request.Context()); err != nil {
		s.log.Error(c.Request.Context(), "logout failed", "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func queryEscape(s string) string {
	return url.QueryEscape(s)
}

func confidenceLevel(confidence float64) string {
	score := int(confidence*100 + 0.5)
	switch {
	case score >= 90:
		return "High"
	case score >= 70:
		return "Moderate"
	default:
		return "Low"
	}
}
