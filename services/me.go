package services

import (
	"context"
	"net/http"

	"github.com/timecrax/webapp/models"
	"github.com/timecrax/webapp/utils"
)

// Me fetches the current user's profile. The picture path comes back
// relative to the backend, so it is normalized to an absolute URL here.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return models.User{}, err
	}
	user.Picture = utils.WithBaseURL(c.BaseURL, user.Picture)
	return user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/me/profile", req, nil)
}

func (c *Client) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/me/password", req, nil)
}

// UploadPicture sends a new profile picture as multipart field "file" and
// returns the stored picture's absolute URL.
func (c *Client) UploadPicture(ctx context.Context, filename string, data []byte) (string, error) {
	var res struct {
		Picture string `json:"picture"`
	}
	if err := c.doMultipart(ctx, "/me/picture", nil, "file", filename, data, &res); err != nil {
		return "", err
	}
	return utils.WithBaseURL(c.BaseURL, res.Picture), nil
}

// Ranking returns users ordered by score, highest first.
func (c *Client) Ranking(ctx context.Context) ([]models.RankingUser, error) {
	var ranking []models.RankingUser
	if err := c.doJSON(ctx, http.MethodGet, "/me/ranking", nil, &ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}
