package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/services"
	"github.com/timecrax/webapp/utils"
)

// tokenLifetime mirrors the backend's JWT expiry.
const tokenLifetime = 7 * 24 * time.Hour

type authPageData struct {
	Error   string
	Message string
	Email   string
}

func (a *App) LoginPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	render(w, "login.html", authPageData{
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
	})
}

func (a *App) LoginHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	res, err := a.client(r).Login(r.Context(), email, password)
	if err != nil {
		log.Printf("LoginHandler: authentication failed for %s: %v", email, err)
		render(w, "login.html", authPageData{Error: "Invalid credentials", Email: email})
		return
	}

	utils.SetCookie(w, r, authCookie, res.Token, time.Now().Add(tokenLifetime))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type registerPageData struct {
	Error      string
	FirstName  string
	LastName   string
	Email      string
	SchoolName string
	Role       string
}

func (a *App) RegisterPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	render(w, "register.html", registerPageData{Role: "student"})
}

func (a *App) RegisterHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := models.RegisterRequest{
		Role:       r.FormValue("role"),
		FirstName:  services.SanitiseText(r.FormValue("first_name")),
		LastName:   services.SanitiseText(r.FormValue("last_name")),
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		SchoolName: services.SanitiseText(r.FormValue("school_name")),
	}

	retry := registerPageData{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		SchoolName: req.SchoolName,
		Role:       req.Role,
	}

	if req.Role != "student" && req.Role != "teacher" {
		retry.Error = "Choose a role."
		render(w, "register.html", retry)
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		retry.Error = "Name, email and password are required."
		render(w, "register.html", retry)
		return
	}

	res, err := a.client(r).Register(r.Context(), req)
	if err != nil {
		log.Printf("RegisterHandler: registration failed for %s: %v", req.Email, err)
		retry.Error = err.Error()
		render(w, "register.html", retry)
		return
	}

	utils.SetCookie(w, r, authCookie, res.Token, time.Now().Add(tokenLifetime))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) LogoutHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.ClearCookie(w, r, authCookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
