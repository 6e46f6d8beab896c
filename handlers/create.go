package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/services"
)

// wizardView backs the theme authoring page: the saved-card grid, the card
// form (empty, mid-edit, or redisplayed with errors) and any banners.
type wizardView struct {
	SessionID    string
	SessionError string
	Error        string

	ThemeID     string
	ThemeName   string
	ThemeResume string
	HasCover    bool

	Cards  []models.SavedCard
	CardID string
	Card   models.CardDraft
	Errors services.FieldErrors

	MinCards int
	MaxCards int
	AtCap    bool
}

func (a *App) newWizardView(sessionID string, draft *services.ThemeDraft) wizardView {
	v := wizardView{
		SessionID: sessionID,
		Errors:    services.FieldErrors{},
		MinCards:  a.MinCards,
		MaxCards:  a.MaxCards,
	}
	if draft == nil {
		v.SessionError = "Upload session is not ready. Reload the page to start a new one."
		v.Card = models.NewCardDraft(0)
		return v
	}
	v.ThemeID = draft.ThemeID
	v.ThemeName = draft.Name
	v.ThemeResume = draft.Resume
	v.HasCover = draft.CoverImage != ""
	v.Cards = draft.Cards()
	v.Card = models.NewCardDraft(draft.NextOrderIndex())
	v.AtCap = draft.Len() >= a.MaxCards
	return v
}

// NewThemePage opens the wizard. Without a session query parameter it asks
// the backend for a fresh asset session, registers an empty draft under it
// and redirects so the page URL stays shareable across form posts. With
// ?edit=<cardID> it reloads a saved card into the form.
func (a *App) NewThemePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID != "" {
		draft := a.Drafts.Get(sessionID)
		v := a.newWizardView(sessionID, draft)
		if draft != nil {
			if editID := r.URL.Query().Get("edit"); editID != "" {
				if card, found := draft.CardByID(editID); found {
					v.CardID = card.ID
					v.Card = card.CardDraft
				}
			}
		}
		a.renderWizard(w, v)
		return
	}

	session, err := client.CreateAssetSession(r.Context(), "")
	if err != nil {
		log.Printf("NewThemePage: creating asset session failed: %v", err)
		v := a.newWizardView("", nil)
		a.renderWizard(w, v)
		return
	}
	a.Drafts.Create(session.SessionID)

	http.Redirect(w, r, "/create-theme?session="+session.SessionID, http.StatusSeeOther)
}

// SaveCardHandler runs one card through the validate → upload → save
// pipeline. Validation failures redisplay the form with per-field messages
// and nothing is uploaded; upload failures abandon the save and surface a
// banner, leaving any already-transferred assets on the backend.
func (a *App) SaveCardHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sessionID := r.FormValue("session_id")
	draft := a.Drafts.Get(sessionID)
	if draft == nil {
		a.renderWizard(w, a.newWizardView(sessionID, nil))
		return
	}

	cardID := r.FormValue("card_id")
	orderIndex := draft.NextOrderIndex()
	if cardID != "" {
		existing, found := draft.CardByID(cardID)
		if !found {
			cardID = ""
		} else {
			orderIndex = existing.OrderIndex
		}
	}

	card, err := parseCardForm(r, orderIndex)
	if err != nil {
		log.Printf("SaveCardHandler: reading card form failed: %v", err)
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if errs := services.ValidateCard(card); len(errs) > 0 {
		v := a.newWizardView(sessionID, draft)
		v.CardID = cardID
		v.Card = card
		v.Errors = errs
		a.renderWizard(w, v)
		return
	}

	uploaded, err := client.UploadCardImages(r.Context(), sessionID, card)
	if err != nil {
		log.Printf("SaveCardHandler: uploading card images failed: %v", err)
		v := a.newWizardView(sessionID, draft)
		v.CardID = cardID
		v.Card = card
		v.Error = "Uploading card images failed: " + err.Error()
		a.renderWizard(w, v)
		return
	}

	if cardID == "" {
		cardID = uuid.NewString()
	}
	if err := draft.SaveCard(models.SavedCard{ID: cardID, CardDraft: uploaded}, a.MaxCards); err != nil {
		v := a.newWizardView(sessionID, draft)
		v.Error = fmt.Sprintf("This theme already holds %d cards.", a.MaxCards)
		a.renderWizard(w, v)
		return
	}

	http.Redirect(w, r, "/create-theme?session="+sessionID, http.StatusSeeOther)
}

// DeleteCardHandler removes a saved card. Backend assets for the card's
// order index are deleted first; the card leaves local state only once that
// call has succeeded.
func (a *App) DeleteCardHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	sessionID := r.FormValue("session_id")
	draft := a.Drafts.Get(sessionID)
	if draft == nil {
		a.renderWizard(w, a.newWizardView(sessionID, nil))
		return
	}

	card, found := draft.CardByID(r.FormValue("card_id"))
	if !found {
		http.Redirect(w, r, "/create-theme?session="+sessionID, http.StatusSeeOther)
		return
	}

	if _, err := client.DeleteCardAssets(r.Context(), sessionID, card.OrderIndex); err != nil {
		log.Printf("DeleteCardHandler: deleting assets for card %d failed: %v", card.OrderIndex, err)
		v := a.newWizardView(sessionID, draft)
		v.Error = "Deleting the card's images failed: " + err.Error()
		a.renderWizard(w, v)
		return
	}
	draft.DeleteCard(card.ID)

	http.Redirect(w, r, "/create-theme?session="+sessionID, http.StatusSeeOther)
}

// SubmitThemeHandler validates the theme, assembles the wire payload and
// creates (or, in the edit flow, updates) the theme. The draft survives any
// failure so the author can retry.
func (a *App) SubmitThemeHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sessionID := r.FormValue("session_id")
	draft := a.Drafts.Get(sessionID)
	if draft == nil {
		a.renderWizard(w, a.newWizardView(sessionID, nil))
		return
	}

	draft.Name = services.SanitiseText(r.FormValue("theme_name"))
	draft.Resume = services.SanitiseText(r.FormValue("theme_resume"))
	cover, err := readFormFile(r, "theme_image")
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if cover != nil {
		draft.CoverImage = dataURI(cover)
	}

	if errs := services.ValidateTheme(draft.Name, draft.CoverImage, draft.Len(), a.MinCards); len(errs) > 0 {
		v := a.newWizardView(sessionID, draft)
		v.Errors = errs
		a.renderWizard(w, v)
		return
	}

	payload, err := services.AssembleTheme(draft, sessionID, a.BackendURL)
	if err != nil {
		log.Printf("SubmitThemeHandler: assembling theme failed: %v", err)
		v := a.newWizardView(sessionID, draft)
		v.Error = "Saving the theme failed: " + err.Error()
		a.renderWizard(w, v)
		return
	}

	if draft.ThemeID != "" {
		err = client.UpdateTheme(r.Context(), draft.ThemeID, payload)
	} else {
		_, err = client.CreateTheme(r.Context(), payload)
	}
	if err != nil {
		log.Printf("SubmitThemeHandler: saving theme failed: %v", err)
		v := a.newWizardView(sessionID, draft)
		v.Error = "Saving the theme failed: " + err.Error()
		a.renderWizard(w, v)
		return
	}

	a.Drafts.Delete(sessionID)
	http.Redirect(w, r, "/my-themes", http.StatusSeeOther)
}

func (a *App) renderWizard(w http.ResponseWriter, v wizardView) {
	render(w, "create-theme.html", v)
}

// parseCardForm builds a CardDraft from the wizard's multipart form. Image
// fields pair an optional file input with a hidden URL carrying the result
// of an earlier upload, so unchanged images survive edits untouched.
func parseCardForm(r *http.Request, orderIndex int) (models.CardDraft, error) {
	card := models.NewCardDraft(orderIndex)

	card.Year = services.SanitiseText(r.FormValue("year"))
	card.Era = models.ParseEra(r.FormValue("era"))
	card.Caption = services.SanitiseText(r.FormValue("caption"))

	img, err := readFormFile(r, "card_image")
	if err != nil {
		return models.CardDraft{}, err
	}
	card.Image = models.ImageRef{Upload: img, URL: r.FormValue("card_image_url")}

	card.ImageQuiz.Question = services.SanitiseText(r.FormValue("imagequiz_question"))
	for k := range card.ImageQuiz.Options {
		opt, err := readFormFile(r, fmt.Sprintf("imagequiz_option_%d", k))
		if err != nil {
			return models.CardDraft{}, err
		}
		card.ImageQuiz.Options[k] = models.ImageRef{
			Upload: opt,
			URL:    r.FormValue(fmt.Sprintf("imagequiz_option_url_%d", k)),
		}
	}
	card.ImageQuiz.CorrectIndex = parseIndex(r.FormValue("imagequiz_correct"))

	card.TextQuiz.Question = services.SanitiseText(r.FormValue("textquiz_question"))
	for k := range card.TextQuiz.Options {
		card.TextQuiz.Options[k] = services.SanitiseText(r.FormValue(fmt.Sprintf("textquiz_option_%d", k)))
	}
	card.TextQuiz.CorrectIndex = parseIndex(r.FormValue("textquiz_correct"))

	card.TrueFalseQuiz.Statement = services.SanitiseText(r.FormValue("tf_statement"))
	card.TrueFalseQuiz.Answer = models.ParseAnswer(r.FormValue("tf_answer"))

	card.CorrelationQuiz.Prompt = services.SanitiseText(r.FormValue("corr_prompt"))
	for k := range card.CorrelationQuiz.Items {
		img, err := readFormFile(r, fmt.Sprintf("corr_image_%d", k))
		if err != nil {
			return models.CardDraft{}, err
		}
		card.CorrelationQuiz.Items[k] = models.CorrelationItemDraft{
			Image: models.ImageRef{
				Upload: img,
				URL:    r.FormValue(fmt.Sprintf("corr_image_url_%d", k)),
			},
			Text: services.SanitiseText(r.FormValue(fmt.Sprintf("corr_text_%d", k))),
		}
	}

	return card, nil
}

func parseIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
