package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/timecrax/webapp/models"
)

func (c *Client) CreateTheme(ctx context.Context, req models.CreateThemeRequest) (models.ThemeResponse, error) {
	var res models.ThemeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/themes", req, &res); err != nil {
		return models.ThemeResponse{}, err
	}
	return res, nil
}

func (c *Client) UpdateTheme(ctx context.Context, id string, req models.CreateThemeRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/themes/"+url.PathEscape(id), req, nil)
}

func (c *Client) GetTheme(ctx context.Context, id string) (models.ThemeDetail, error) {
	var res models.ThemeDetail
	if err := c.doJSON(ctx, http.MethodGet, "/themes/"+url.PathEscape(id), nil, &res); err != nil {
		return models.ThemeDetail{}, err
	}
	return res, nil
}

func (c *Client) DeleteTheme(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/themes/"+url.PathEscape(id), nil, nil)
}

// MyThemes lists themes authored by the current user.
func (c *Client) MyThemes(ctx context.Context) ([]models.ThemeResponse, error) {
	var themes []models.ThemeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/themes/my-themes", nil, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

// ThemesStorage lists the read-only shared theme catalog.
func (c *Client) ThemesStorage(ctx context.Context) ([]models.ThemeResponse, error) {
	var themes []models.ThemeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/themes/storage", nil, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}
