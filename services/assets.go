package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/timecrax/webapp/models"
)

// ErrSessionNotReady blocks any upload or submission attempted before the
// backend has issued an asset session.
var ErrSessionNotReady = errors.New("upload session is not ready")

// Slot keys address one image field's position within the theme structure.
// The backend correlates them to earlier uploads, so the format has to be
// byte-identical across create and edit flows.
func SlotCardImage(i int) string {
	return fmt.Sprintf("cards[%d].imageUrl", i)
}

func SlotImageQuizOption(i, k int) string {
	return fmt.Sprintf("cards[%d].imageQuiz.options[%d].imageUrl", i, k)
}

func SlotCorrelationItem(i, k int) string {
	return fmt.Sprintf("cards[%d].correlationQuiz.items[%d].imageUrl", i, k)
}

// CreateAssetSession opens a backend upload session. themeID is optional;
// when editing an existing theme it ties the session to that theme.
func (c *Client) CreateAssetSession(ctx context.Context, themeID string) (models.UploadSession, error) {
	var body any
	if themeID != "" {
		body = map[string]string{"themeId": themeID}
	}
	var res models.UploadSession
	if err := c.doJSON(ctx, http.MethodPost, "/theme-assets/sessions", body, &res); err != nil {
		return models.UploadSession{}, err
	}
	if res.SessionID == "" {
		return models.UploadSession{}, errors.New("session response carried no sessionId")
	}
	return res, nil
}

// UploadAsset uploads one image into the session under the given slot key.
func (c *Client) UploadAsset(ctx context.Context, sessionID, slotKey, filename string, data []byte) (models.UploadAssetResponse, error) {
	path := "/theme-assets/sessions/" + url.PathEscape(sessionID) + "/upload"
	var res models.UploadAssetResponse
	err := c.doMultipart(ctx, path, map[string]string{"slotKey": slotKey}, "file", filename, data, &res)
	if err != nil {
		return models.UploadAssetResponse{}, err
	}
	return res, nil
}

// DeleteCardAssets removes every session asset whose slot key belongs to the
// given card index. Used before a card is dropped from the local draft.
func (c *Client) DeleteCardAssets(ctx context.Context, sessionID string, cardIndex int) (models.DeleteCardAssetsResponse, error) {
	path := "/theme-assets/sessions/" + url.PathEscape(sessionID) + "/cards/" + strconv.Itoa(cardIndex)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+path, nil)
	if err != nil {
		return models.DeleteCardAssetsResponse{}, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	var res models.DeleteCardAssetsResponse
	if err := c.send(req, path, &res); err != nil {
		return models.DeleteCardAssetsResponse{}, err
	}
	return res, nil
}

// UploadCardImages reconciles a card's image fields with the asset session.
// Only fields still carrying a local file are uploaded (concurrently, up to
// 8 per card); fields that already hold a remote URL pass through unchanged,
// so unmodified images are never re-sent during an edit. Any single failure
// aborts the whole card save; assets already uploaded stay on the backend.
func (c *Client) UploadCardImages(ctx context.Context, sessionID string, card models.CardDraft) (models.CardDraft, error) {
	if sessionID == "" {
		return card, ErrSessionNotReady
	}

	updated := card
	i := card.OrderIndex

	g, ctx := errgroup.WithContext(ctx)

	// Each goroutine writes a distinct field of updated, never a shared one.
	if card.Image.Pending() {
		g.Go(func() error {
			res, err := c.UploadAsset(ctx, sessionID, SlotCardImage(i), card.Image.Upload.Name, card.Image.Upload.Data)
			if err != nil {
				return fmt.Errorf("card image: %w", err)
			}
			updated.Image = models.ImageRef{URL: res.URL}
			return nil
		})
	}

	for k, opt := range card.ImageQuiz.Options {
		if !opt.Pending() {
			continue
		}
		k, opt := k, opt
		g.Go(func() error {
			res, err := c.UploadAsset(ctx, sessionID, SlotImageQuizOption(i, k), opt.Upload.Name, opt.Upload.Data)
			if err != nil {
				return fmt.Errorf("image quiz option %d: %w", k+1, err)
			}
			updated.ImageQuiz.Options[k] = models.ImageRef{URL: res.URL}
			return nil
		})
	}

	for k, item := range card.CorrelationQuiz.Items {
		if !item.Image.Pending() {
			continue
		}
		k, item := k, item
		g.Go(func() error {
			res, err := c.UploadAsset(ctx, sessionID, SlotCorrelationItem(i, k), item.Image.Upload.Name, item.Image.Upload.Data)
			if err != nil {
				return fmt.Errorf("correlation image %d: %w", k+1, err)
			}
			updated.CorrelationQuiz.Items[k].Image = models.ImageRef{URL: res.URL}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return card, err
	}
	return updated, nil
}
