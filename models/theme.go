package models

import "time"

// Wire shapes for the theme endpoints. Field names and nesting must match
// the backend exactly; slot keys are derived from the same paths.

type ImageOptionRequest struct {
	ImageURL string `json:"imageUrl"`
}

type ImageQuizRequest struct {
	Question     string               `json:"question"`
	Options      []ImageOptionRequest `json:"options"`
	CorrectIndex int                  `json:"correctIndex"`
}

type TextOptionRequest struct {
	Text string `json:"text"`
}

type TextQuizRequest struct {
	Question     string              `json:"question"`
	Options      []TextOptionRequest `json:"options"`
	CorrectIndex int                 `json:"correctIndex"`
}

type TrueFalseQuizRequest struct {
	Statement string `json:"statement"`
	Answer    bool   `json:"answer"`
}

type CorrelationItemRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

type CorrelationQuizRequest struct {
	Prompt string                   `json:"prompt"`
	Items  []CorrelationItemRequest `json:"items"`
}

type ThemeCardRequest struct {
	OrderIndex      int                    `json:"orderIndex"`
	Year            int                    `json:"year"`
	Era             string                 `json:"era,omitempty"`
	Caption         string                 `json:"caption"`
	ImageURL        string                 `json:"imageUrl"`
	ImageQuiz       ImageQuizRequest       `json:"imageQuiz"`
	TextQuiz        TextQuizRequest        `json:"textQuiz"`
	TrueFalseQuiz   TrueFalseQuizRequest   `json:"trueFalseQuiz"`
	CorrelationQuiz CorrelationQuizRequest `json:"correlationQuiz"`
}

// CreateThemeRequest is the full submission payload. The upload session id
// lets the backend promote the session's assets to the created theme. The
// same shape is sent on PUT /themes/{id}.
type CreateThemeRequest struct {
	Name            string             `json:"name"`
	Resume          string             `json:"resume,omitempty"`
	Image           string             `json:"image"`
	UploadSessionID string             `json:"uploadSessionId"`
	Cards           []ThemeCardRequest `json:"cards"`
}

type ThemeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ThemeDetail is the GET /themes/{id} body, used to rebuild a draft when
// editing an existing theme.
type ThemeDetail struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Resume string             `json:"resume,omitempty"`
	Image  string             `json:"image,omitempty"`
	Cards  []ThemeCardRequest `json:"cards"`
}

// UploadSession is issued by POST /theme-assets/sessions. The client only
// holds the identifier; the session itself is owned by the backend.
type UploadSession struct {
	SessionID string    `json:"sessionId"`
	ThemeID   string    `json:"themeId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type UploadAssetResponse struct {
	SlotKey string `json:"slotKey"`
	URL     string `json:"url"`
}

type DeleteCardAssetsResponse struct {
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}
