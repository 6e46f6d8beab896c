package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/utils"
)

// ErrDuplicateOrderIndex signals that two saved cards carry the same order
// index. The index discipline in ThemeDraft should make this impossible;
// assembly still refuses to submit rather than corrupt slot correlation.
var ErrDuplicateOrderIndex = errors.New("duplicate card order index")

// ErrAnswerNotChosen signals a true/false quiz whose answer is still the
// unset tri-state variant at submission time.
var ErrAnswerNotChosen = errors.New("true/false answer not chosen")

// AssembleTheme converts a validated draft into the wire payload for theme
// creation or update. Cards are ordered by index ascending because the
// backend correlates array positions with the session's slot keys. No
// network is touched here; any error leaves the draft untouched.
func AssembleTheme(d *ThemeDraft, sessionID, baseURL string) (models.CreateThemeRequest, error) {
	if sessionID == "" {
		return models.CreateThemeRequest{}, ErrSessionNotReady
	}

	cards := d.Cards()

	seen := make(map[int]bool, len(cards))
	var duplicates []int
	for _, c := range cards {
		if seen[c.OrderIndex] {
			duplicates = append(duplicates, c.OrderIndex)
			continue
		}
		seen[c.OrderIndex] = true
	}
	if len(duplicates) > 0 {
		return models.CreateThemeRequest{}, fmt.Errorf("%w: %v", ErrDuplicateOrderIndex, duplicates)
	}

	req := models.CreateThemeRequest{
		Name:            strings.TrimSpace(d.Name),
		Resume:          strings.TrimSpace(d.Resume),
		Image:           d.CoverImage,
		UploadSessionID: sessionID,
		Cards:           make([]models.ThemeCardRequest, 0, len(cards)),
	}

	for _, c := range cards {
		assembled, err := assembleCard(c.CardDraft, baseURL)
		if err != nil {
			return models.CreateThemeRequest{}, fmt.Errorf("card %d: %w", c.OrderIndex, err)
		}
		req.Cards = append(req.Cards, assembled)
	}

	return req, nil
}

func assembleCard(c models.CardDraft, baseURL string) (models.ThemeCardRequest, error) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Year))
	if err != nil {
		return models.ThemeCardRequest{}, fmt.Errorf("year %q is not numeric", c.Year)
	}
	if c.TrueFalseQuiz.Answer == models.AnswerUnset {
		return models.ThemeCardRequest{}, ErrAnswerNotChosen
	}

	card := models.ThemeCardRequest{
		OrderIndex: c.OrderIndex,
		Year:       year,
		Era:        c.Era.String(),
		Caption:    strings.TrimSpace(c.Caption),
		ImageURL:   utils.WithBaseURL(baseURL, c.Image.URL),
		ImageQuiz: models.ImageQuizRequest{
			Question:     c.ImageQuiz.Question,
			Options:      make([]models.ImageOptionRequest, 0, len(c.ImageQuiz.Options)),
			CorrectIndex: clampIndex(c.ImageQuiz.CorrectIndex),
		},
		TextQuiz: models.TextQuizRequest{
			Question:     c.TextQuiz.Question,
			Options:      make([]models.TextOptionRequest, 0, len(c.TextQuiz.Options)),
			CorrectIndex: clampIndex(c.TextQuiz.CorrectIndex),
		},
		TrueFalseQuiz: models.TrueFalseQuizRequest{
			Statement: c.TrueFalseQuiz.Statement,
			Answer:    c.TrueFalseQuiz.Answer.Bool(),
		},
		CorrelationQuiz: models.CorrelationQuizRequest{
			Prompt: c.CorrelationQuiz.Prompt,
			Items:  make([]models.CorrelationItemRequest, 0, len(c.CorrelationQuiz.Items)),
		},
	}

	for _, opt := range c.ImageQuiz.Options {
		card.ImageQuiz.Options = append(card.ImageQuiz.Options, models.ImageOptionRequest{
			ImageURL: utils.WithBaseURL(baseURL, opt.URL),
		})
	}
	for _, opt := range c.TextQuiz.Options {
		card.TextQuiz.Options = append(card.TextQuiz.Options, models.TextOptionRequest{Text: opt})
	}
	for _, item := range c.CorrelationQuiz.Items {
		card.CorrelationQuiz.Items = append(card.CorrelationQuiz.Items, models.CorrelationItemRequest{
			Text:     item.Text,
			ImageURL: utils.WithBaseURL(baseURL, item.Image.URL),
		})
	}

	return card, nil
}

func clampIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	return idx
}
