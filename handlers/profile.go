package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/services"
)

type profilePageData struct {
	Error   string
	Message string
	User    models.User
}

func (a *App) ProfilePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	user, err := client.Me(r.Context())
	if err != nil {
		log.Printf("ProfilePage: fetching profile failed: %v", err)
		http.Redirect(w, r, "/login?error="+url.QueryEscape("Session expired, please log in again."), http.StatusSeeOther)
		return
	}

	render(w, "profile.html", profilePageData{
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
		User:    user,
	})
}

func (a *App) UpdateProfileHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	req := models.UpdateProfileRequest{
		FirstName:  services.SanitiseText(r.FormValue("first_name")),
		LastName:   services.SanitiseText(r.FormValue("last_name")),
		SchoolName: services.SanitiseText(r.FormValue("school_name")),
	}

	if err := client.UpdateProfile(r.Context(), req); err != nil {
		log.Printf("UpdateProfileHandler: update failed: %v", err)
		http.Redirect(w, r, "/profile?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?message="+url.QueryEscape("Profile updated."), http.StatusSeeOther)
}

func (a *App) ChangePasswordHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	if current == "" || next == "" {
		http.Redirect(w, r, "/profile?error="+url.QueryEscape("Both passwords are required."), http.StatusSeeOther)
		return
	}

	err := client.ChangePassword(r.Context(), models.UpdatePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		log.Printf("ChangePasswordHandler: change failed: %v", err)
		http.Redirect(w, r, "/profile?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?message="+url.QueryEscape("Password changed."), http.StatusSeeOther)
}

func (a *App) UploadPictureHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	upload, err := readFormFile(r, "picture")
	if err != nil || upload == nil {
		http.Redirect(w, r, "/profile?error="+url.QueryEscape("Choose a picture to upload."), http.StatusSeeOther)
		return
	}

	if _, err := client.UploadPicture(r.Context(), upload.Name, upload.Data); err != nil {
		log.Printf("UploadPictureHandler: upload failed: %v", err)
		http.Redirect(w, r, "/profile?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?message="+url.QueryEscape("Picture updated."), http.StatusSeeOther)
}
