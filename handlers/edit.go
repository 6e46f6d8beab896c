package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/services"
)

// EditThemePage loads an existing theme into the authoring wizard. A fresh
// asset session is opened against the theme's id so re-uploaded images
// replace the right backend slots; untouched images stay as remote URLs and
// never re-upload.
func (a *App) EditThemePage(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	client, ok := a.requireAuth(w, r)
	if !ok {
		return
	}

	id := p.ByName("id")
	detail, err := client.GetTheme(r.Context(), id)
	if err != nil {
		log.Printf("EditThemePage: fetching theme %s failed: %v", id, err)
		http.Redirect(w, r, "/my-themes?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	session, err := client.CreateAssetSession(r.Context(), id)
	if err != nil {
		log.Printf("EditThemePage: creating asset session failed: %v", err)
		http.Redirect(w, r, "/my-themes?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	a.Drafts.Put(session.SessionID, a.draftFromTheme(detail))
	http.Redirect(w, r, "/create-theme?session="+session.SessionID, http.StatusSeeOther)
}

func (a *App) draftFromTheme(detail models.ThemeDetail) *services.ThemeDraft {
	draft := &services.ThemeDraft{
		ThemeID:    detail.ID,
		Name:       detail.Name,
		Resume:     detail.Resume,
		CoverImage: detail.Image,
	}

	// The cap never rejects cards that already belong to the theme.
	limit := a.MaxCards
	if len(detail.Cards) > limit {
		limit = len(detail.Cards)
	}

	for _, c := range detail.Cards {
		card := models.NewCardDraft(c.OrderIndex)
		card.Year = strconv.Itoa(c.Year)
		card.Era = models.ParseEra(c.Era)
		card.Caption = c.Caption
		card.Image = models.ImageRef{URL: c.ImageURL}

		card.ImageQuiz.Question = c.ImageQuiz.Question
		card.ImageQuiz.CorrectIndex = c.ImageQuiz.CorrectIndex
		for k, opt := range c.ImageQuiz.Options {
			if k >= len(card.ImageQuiz.Options) {
				break
			}
			card.ImageQuiz.Options[k] = models.ImageRef{URL: opt.ImageURL}
		}

		card.TextQuiz.Question = c.TextQuiz.Question
		card.TextQuiz.CorrectIndex = c.TextQuiz.CorrectIndex
		for k, opt := range c.TextQuiz.Options {
			if k >= len(card.TextQuiz.Options) {
				break
			}
			card.TextQuiz.Options[k] = opt.Text
		}

		card.TrueFalseQuiz.Statement = c.TrueFalseQuiz.Statement
		if c.TrueFalseQuiz.Answer {
			card.TrueFalseQuiz.Answer = models.AnswerTrue
		} else {
			card.TrueFalseQuiz.Answer = models.AnswerFalse
		}

		if c.CorrelationQuiz.Prompt != "" {
			card.CorrelationQuiz.Prompt = c.CorrelationQuiz.Prompt
		}
		for k, item := range c.CorrelationQuiz.Items {
			if k >= len(card.CorrelationQuiz.Items) {
				break
			}
			card.CorrelationQuiz.Items[k] = models.CorrelationItemDraft{
				Image: models.ImageRef{URL: item.ImageURL},
				Text:  item.Text,
			}
		}

		if err := draft.SaveCard(models.SavedCard{ID: uuid.NewString(), CardDraft: card}, limit); err != nil {
			log.Printf("draftFromTheme: loading card %d failed: %v", c.OrderIndex, err)
		}
	}

	return draft
}
