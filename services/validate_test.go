package services

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/timecrax/webapp/models"
)

// validCard builds a draft satisfying every rule, with all images already
// uploaded (URL-backed).
func validCard(orderIndex int) models.CardDraft {
	card := models.NewCardDraft(orderIndex)
	card.Year = "1789"
	card.Era = models.EraCE
	card.Caption = "Storming of the Bastille"
	card.Image = models.ImageRef{URL: "https://cdn.example.com/cards/main.png"}

	card.ImageQuiz.Question = "Which picture shows the Bastille?"
	for k := range card.ImageQuiz.Options {
		card.ImageQuiz.Options[k] = models.ImageRef{URL: fmt.Sprintf("https://cdn.example.com/iq-%d.png", k)}
	}
	card.ImageQuiz.CorrectIndex = 1

	card.TextQuiz.Question = "In which year was the Bastille stormed?"
	for k := range card.TextQuiz.Options {
		card.TextQuiz.Options[k] = fmt.Sprintf("Answer %d", k)
	}
	card.TextQuiz.CorrectIndex = 2

	card.TrueFalseQuiz.Statement = "The Bastille was a prison."
	card.TrueFalseQuiz.Answer = models.AnswerTrue

	for k := range card.CorrelationQuiz.Items {
		card.CorrelationQuiz.Items[k] = models.CorrelationItemDraft{
			Image: models.ImageRef{URL: fmt.Sprintf("https://cdn.example.com/corr-%d.png", k)},
			Text:  fmt.Sprintf("Figure %d", k),
		}
	}
	return card
}

func sortedKeys(errs FieldErrors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestValidateCardValid(t *testing.T) {
	errs := ValidateCard(validCard(0))
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateCardPendingImagesAreValid(t *testing.T) {
	card := validCard(0)
	upload := &models.FileUpload{Name: "a.png", Data: []byte("png")}
	card.Image = models.ImageRef{Upload: upload}
	card.ImageQuiz.Options[2] = models.ImageRef{Upload: upload}
	card.CorrelationQuiz.Items[0].Image = models.ImageRef{Upload: upload}

	if errs := ValidateCard(card); len(errs) != 0 {
		t.Fatalf("pending files should satisfy image rules, got %v", errs)
	}
}

func TestValidateCardSingleMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CardDraft)
		key    string
	}{
		{"empty year", func(c *models.CardDraft) { c.Year = "" }, FieldCardYear},
		{"non-numeric year", func(c *models.CardDraft) { c.Year = "MDCCLXXXIX" }, FieldCardYear},
		{"unset era", func(c *models.CardDraft) { c.Era = models.EraUnset }, FieldCardEra},
		{"empty caption", func(c *models.CardDraft) { c.Caption = "  " }, FieldCardCaption},
		{"overlong caption", func(c *models.CardDraft) { c.Caption = strings.Repeat("x", 36) }, FieldCardCaption},
		{"missing card image", func(c *models.CardDraft) { c.Image = models.ImageRef{} }, FieldCardImage},
		{"empty image quiz question", func(c *models.CardDraft) { c.ImageQuiz.Question = "" }, FieldImageQuizQuestion},
		{"missing image quiz option", func(c *models.CardDraft) { c.ImageQuiz.Options[2] = models.ImageRef{} }, FieldImageQuizOption(2)},
		{"unset image quiz correct", func(c *models.CardDraft) { c.ImageQuiz.CorrectIndex = -1 }, FieldImageQuizCorrect},
		{"empty text quiz question", func(c *models.CardDraft) { c.TextQuiz.Question = "" }, FieldTextQuizQuestion},
		{"empty text quiz option", func(c *models.CardDraft) { c.TextQuiz.Options[3] = "" }, FieldTextQuizOption(3)},
		{"unset text quiz correct", func(c *models.CardDraft) { c.TextQuiz.CorrectIndex = -1 }, FieldTextQuizCorrect},
		{"empty statement", func(c *models.CardDraft) { c.TrueFalseQuiz.Statement = "" }, FieldStatement},
		{"unset answer", func(c *models.CardDraft) { c.TrueFalseQuiz.Answer = models.AnswerUnset }, FieldAnswer},
		{"empty correlation prompt", func(c *models.CardDraft) { c.CorrelationQuiz.Prompt = "" }, FieldCorrelationPrompt},
		{"missing correlation image", func(c *models.CardDraft) { c.CorrelationQuiz.Items[1].Image = models.ImageRef{} }, FieldCorrelationItemImage(1)},
		{"empty correlation text", func(c *models.CardDraft) { c.CorrelationQuiz.Items[0].Text = "" }, FieldCorrelationItemText(0)},
		{"overlong correlation text", func(c *models.CardDraft) { c.CorrelationQuiz.Items[2].Text = strings.Repeat("y", 151) }, FieldCorrelationItemText(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard(0)
			tt.mutate(&card)

			errs := ValidateCard(card)
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", sortedKeys(errs))
			}
			if _, ok := errs[tt.key]; !ok {
				t.Fatalf("expected key %q, got %v", tt.key, sortedKeys(errs))
			}
			if errs[tt.key] == "" {
				t.Fatal("error message must not be empty")
			}
		})
	}
}

func TestValidateCardMultipleMissingFields(t *testing.T) {
	card := validCard(0)
	card.Year = ""
	card.Era = models.EraUnset
	card.ImageQuiz.Options[0] = models.ImageRef{}
	card.ImageQuiz.Options[3] = models.ImageRef{}
	card.TrueFalseQuiz.Answer = models.AnswerUnset

	want := []string{
		FieldAnswer,
		FieldCardEra,
		FieldCardYear,
		FieldImageQuizOption(0),
		FieldImageQuizOption(3),
	}
	sort.Strings(want)

	got := sortedKeys(ValidateCard(card))
	if len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, got)
		}
	}
}

func TestValidateCardEmptyDraft(t *testing.T) {
	// A fresh draft fails every rule except the pre-filled correlation
	// prompt.
	errs := ValidateCard(models.NewCardDraft(0))

	if _, ok := errs[FieldCorrelationPrompt]; ok {
		t.Fatal("default correlation prompt should be valid")
	}
	for _, key := range []string{
		FieldCardYear, FieldCardEra, FieldCardCaption, FieldCardImage,
		FieldImageQuizQuestion, FieldImageQuizCorrect,
		FieldTextQuizQuestion, FieldTextQuizCorrect,
		FieldStatement, FieldAnswer,
	} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("expected key %q in %v", key, sortedKeys(errs))
		}
	}
}

func TestValidateTheme(t *testing.T) {
	if errs := ValidateTheme("Test", "data:image/png;base64,aGk=", 0, 0); len(errs) != 0 {
		t.Fatalf("zero cards with min 0 should be valid, got %v", errs)
	}

	errs := ValidateTheme("  ", "", 3, 12)
	for _, key := range []string{FieldThemeName, FieldThemeImage, FieldThemeCards} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("expected key %q in %v", key, sortedKeys(errs))
		}
	}
	if len(errs) != 3 {
		t.Fatalf("expected exactly 3 errors, got %v", sortedKeys(errs))
	}

	if errs := ValidateTheme("Test", "data:image/png;base64,aGk=", 12, 12); len(errs) != 0 {
		t.Fatalf("card count meeting the minimum should be valid, got %v", errs)
	}
}
