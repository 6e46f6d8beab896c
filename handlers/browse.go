package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"github.com/timecrax/webapp/models"
)

type homePageData struct {
	User models.User
}

func (a *App) HomePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	user, err := client.Me(r.Context())
	if err != nil {
		log.Printf("HomePage: fetching profile failed: %v", err)
		http.Redirect(w, r, "/login?error="+url.QueryEscape("Session expired, please log in again."), http.StatusSeeOther)
		return
	}

	render(w, "home.html", homePageData{User: user})
}

type rankingPageData struct {
	Error   string
	Message string
	Ranking []models.RankingUser
}

func (a *App) RankingPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	data := rankingPageData{}
	ranking, err := client.Ranking(r.Context())
	if err != nil {
		log.Printf("RankingPage: fetching ranking failed: %v", err)
		data.Error = err.Error()
	}
	data.Ranking = ranking

	render(w, "ranking.html", data)
}

type themeListPageData struct {
	Error   string
	Message string
	Themes  []models.ThemeResponse
}

func (a *App) MyThemesPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	data := themeListPageData{Error: r.URL.Query().Get("error")}
	themes, err := client.MyThemes(r.Context())
	if err != nil {
		log.Printf("MyThemesPage: listing themes failed: %v", err)
		data.Error = err.Error()
	}
	data.Themes = themes

	render(w, "my-themes.html", data)
}

func (a *App) StoragePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	data := themeListPageData{}
	themes, err := client.ThemesStorage(r.Context())
	if err != nil {
		log.Printf("StoragePage: listing storage failed: %v", err)
		data.Error = err.Error()
	}
	data.Themes = themes

	render(w, "storage.html", data)
}

func (a *App) DeleteThemeHandler(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	id := p.ByName("id")
	if err := client.DeleteTheme(r.Context(), id); err != nil {
		log.Printf("DeleteThemeHandler: deleting theme %s failed: %v", id, err)
		http.Redirect(w, r, "/my-themes?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/my-themes", http.StatusSeeOther)
}
