package handlers

import (
	"encoding/base64"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/services"
	"github.com/timecrax/webapp/utils"
)

// authCookie holds the backend-issued bearer token between requests.
const authCookie = "auth_token"

// maxUploadBytes bounds multipart form memory while parsing card forms.
const maxUploadBytes = 32 << 20

// App carries the configuration and draft state the handlers need. It is
// built once at startup; nothing here is ambient or package-global.
type App struct {
	BackendURL string
	MinCards   int
	MaxCards   int
	Drafts     *services.DraftStore
}

// client builds a backend client scoped to the requesting user's token.
func (a *App) client(r *http.Request) *services.Client {
	return services.NewClient(a.BackendURL, utils.CookieValue(r, authCookie))
}

// requireAuth redirects to the login page when no token cookie is present.
func (a *App) requireAuth(w http.ResponseWriter, r *http.Request) (*services.Client, bool) {
	token := utils.CookieValue(r, authCookie)
	if token == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	return services.NewClient(a.BackendURL, token), true
}

func render(w http.ResponseWriter, page string, data any) {
	tmpl, err := template.ParseFiles(
		"./frontend/templates/"+page,
		"./frontend/templates/partials/backend-error.html",
	)
	if err != nil {
		log.Printf("render: template parse error for %s: %v", page, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("render: template execute error for %s: %v", page, err)
	}
}

// readFormFile reads one optional uploaded file. A missing or empty part
// returns (nil, nil) so callers can fall back to a previously uploaded URL.
func readFormFile(r *http.Request, field string) (*models.FileUpload, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &models.FileUpload{Name: hdr.Filename, Data: data}, nil
}

// dataURI embeds an uploaded file as a self-contained data URI, the form
// the backend expects for theme cover images.
func dataURI(upload *models.FileUpload) string {
	contentType := http.DetectContentType(upload.Data)
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(upload.Data)
}
