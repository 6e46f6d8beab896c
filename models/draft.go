package models

// Era marks whether a card's year falls before or after the common era.
// The zero value means the author has not picked one yet.
type Era int

const (
	EraUnset Era = iota
	EraBCE
	EraCE
)

func (e Era) String() string {
	switch e {
	case EraBCE:
		return "BCE"
	case EraCE:
		return "CE"
	}
	return ""
}

func ParseEra(s string) Era {
	switch s {
	case "BCE":
		return EraBCE
	case "CE":
		return EraCE
	}
	return EraUnset
}

// Answer is the tri-state true/false quiz answer. AnswerUnset means the
// author never chose, which is a validation error, not a default of false.
type Answer int

const (
	AnswerUnset Answer = iota
	AnswerTrue
	AnswerFalse
)

func (a Answer) Bool() bool { return a == AnswerTrue }

func (a Answer) String() string {
	switch a {
	case AnswerTrue:
		return "true"
	case AnswerFalse:
		return "false"
	}
	return ""
}

func ParseAnswer(s string) Answer {
	switch s {
	case "true":
		return AnswerTrue
	case "false":
		return AnswerFalse
	}
	return AnswerUnset
}

// FileUpload is an image picked by the author but not yet on the backend.
type FileUpload struct {
	Name string
	Data []byte
}

// ImageRef is one image field of a card: either a pending local file, a
// canonical remote URL, or both during an edit (the file wins on upload).
type ImageRef struct {
	Upload *FileUpload
	URL    string
}

// Pending reports whether the field carries a local file that still has to
// be uploaded to the asset session.
func (ref ImageRef) Pending() bool { return ref.Upload != nil }

// Present reports whether the field carries any image at all.
func (ref ImageRef) Present() bool { return ref.Upload != nil || ref.URL != "" }

type ImageQuizDraft struct {
	Question string
	Options  [4]ImageRef
	// CorrectIndex is -1 until the author picks an option.
	CorrectIndex int
}

type TextQuizDraft struct {
	Question string
	Options  [4]string
	// CorrectIndex is -1 until the author picks an option.
	CorrectIndex int
}

type TrueFalseQuizDraft struct {
	Statement string
	Answer    Answer
}

type CorrelationItemDraft struct {
	Image ImageRef
	Text  string
}

type CorrelationQuizDraft struct {
	Prompt string
	Items  [3]CorrelationItemDraft
}

// CardDraft is one historical-event card under construction.
type CardDraft struct {
	OrderIndex      int
	Year            string
	Era             Era
	Caption         string
	Image           ImageRef
	ImageQuiz       ImageQuizDraft
	TextQuiz        TextQuizDraft
	TrueFalseQuiz   TrueFalseQuizDraft
	CorrelationQuiz CorrelationQuizDraft
}

// SavedCard is a card that passed validation and whose images all live on
// the backend asset session.
type SavedCard struct {
	ID string
	CardDraft
}

const defaultCorrelationPrompt = "Match each picture to the correct text:"

// NewCardDraft returns an empty draft for the given order index.
func NewCardDraft(orderIndex int) CardDraft {
	return CardDraft{
		OrderIndex:      orderIndex,
		ImageQuiz:       ImageQuizDraft{CorrectIndex: -1},
		TextQuiz:        TextQuizDraft{CorrectIndex: -1},
		CorrelationQuiz: CorrelationQuizDraft{Prompt: defaultCorrelationPrompt},
	}
}
