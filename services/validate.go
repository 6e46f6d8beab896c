package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/timecrax/webapp/models"
)

// FieldErrors maps a field-path key to a human-readable message. An absent
// key means the field is valid.
type FieldErrors map[string]string

// Field-path keys. Every rule owns exactly one key so templates and tests
// can address individual fields.
const (
	FieldCardYear    = "card.year"
	FieldCardEra     = "card.era"
	FieldCardCaption = "card.caption"
	FieldCardImage   = "card.image"

	FieldImageQuizQuestion = "imageQuiz.question"
	FieldImageQuizCorrect  = "imageQuiz.correct"

	FieldTextQuizQuestion = "textQuiz.question"
	FieldTextQuizCorrect  = "textQuiz.correct"

	FieldStatement = "tf.statement"
	FieldAnswer    = "tf.answer"

	FieldCorrelationPrompt = "corr.prompt"

	FieldThemeName  = "theme.name"
	FieldThemeImage = "theme.image"
	FieldThemeCards = "theme.cards"
)

func FieldImageQuizOption(i int) string { return fmt.Sprintf("imageQuiz.options.%d", i) }
func FieldTextQuizOption(i int) string  { return fmt.Sprintf("textQuiz.options.%d", i) }
func FieldCorrelationItemImage(i int) string {
	return fmt.Sprintf("corr.items.%d.img", i)
}
func FieldCorrelationItemText(i int) string {
	return fmt.Sprintf("corr.items.%d.text", i)
}

const (
	maxCaptionLen         = 35
	maxCorrelationTextLen = 150
)

func isNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateCard checks every rule independently and returns one message per
// failing field. It is pure: no network, no draft mutation. The exactly-4 /
// exactly-3 option counts are enforced structurally by the draft's fixed
// arrays and need no rule here.
func ValidateCard(d models.CardDraft) FieldErrors {
	errs := FieldErrors{}

	if !isNonEmpty(d.Year) {
		errs[FieldCardYear] = "Year is required."
	} else if _, err := strconv.Atoi(strings.TrimSpace(d.Year)); err != nil {
		errs[FieldCardYear] = "Year must be a whole number."
	}
	if d.Era == models.EraUnset {
		errs[FieldCardEra] = "Select BCE or CE."
	}
	if !isNonEmpty(d.Caption) {
		errs[FieldCardCaption] = "Card text is required."
	} else if len(d.Caption) > maxCaptionLen {
		errs[FieldCardCaption] = fmt.Sprintf("Card text must be at most %d characters.", maxCaptionLen)
	}
	if !d.Image.Present() {
		errs[FieldCardImage] = "Card image is required."
	}

	if !isNonEmpty(d.ImageQuiz.Question) {
		errs[FieldImageQuizQuestion] = "Image quiz question is required."
	}
	for i, opt := range d.ImageQuiz.Options {
		if !opt.Present() {
			errs[FieldImageQuizOption(i)] = fmt.Sprintf("Image for option %d is required.", i+1)
		}
	}
	if d.ImageQuiz.CorrectIndex < 0 || d.ImageQuiz.CorrectIndex > 3 {
		errs[FieldImageQuizCorrect] = "Select the correct image."
	}

	if !isNonEmpty(d.TextQuiz.Question) {
		errs[FieldTextQuizQuestion] = "Text quiz question is required."
	}
	for i, opt := range d.TextQuiz.Options {
		if !isNonEmpty(opt) {
			errs[FieldTextQuizOption(i)] = fmt.Sprintf("Text for option %d is required.", i+1)
		}
	}
	if d.TextQuiz.CorrectIndex < 0 || d.TextQuiz.CorrectIndex > 3 {
		errs[FieldTextQuizCorrect] = "Select the correct option."
	}

	if !isNonEmpty(d.TrueFalseQuiz.Statement) {
		errs[FieldStatement] = "True/false statement is required."
	}
	if d.TrueFalseQuiz.Answer == models.AnswerUnset {
		errs[FieldAnswer] = "Select true or false."
	}

	if !isNonEmpty(d.CorrelationQuiz.Prompt) {
		errs[FieldCorrelationPrompt] = "Correlation prompt is required."
	}
	for i, item := range d.CorrelationQuiz.Items {
		if !item.Image.Present() {
			errs[FieldCorrelationItemImage(i)] = fmt.Sprintf("Correlation image %d is required.", i+1)
		}
		if !isNonEmpty(item.Text) {
			errs[FieldCorrelationItemText(i)] = fmt.Sprintf("Correlation text %d is required.", i+1)
		} else if len(item.Text) > maxCorrelationTextLen {
			errs[FieldCorrelationItemText(i)] = fmt.Sprintf("Correlation text %d must be at most %d characters.", i+1, maxCorrelationTextLen)
		}
	}

	return errs
}

// ValidateTheme checks the submission-level rules. minCards comes from
// configuration so the threshold and the UI copy can never disagree.
func ValidateTheme(name, coverImage string, cardCount, minCards int) FieldErrors {
	errs := FieldErrors{}

	if !isNonEmpty(name) {
		errs[FieldThemeName] = "Theme name is required."
	}
	if coverImage == "" {
		errs[FieldThemeImage] = "Theme image is required."
	}
	if cardCount < minCards {
		errs[FieldThemeCards] = fmt.Sprintf("At least %d cards are required.", minCards)
	}

	return errs
}
