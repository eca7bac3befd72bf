package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/config"
)

// ImageService finds a dish photo for a search term. Three providers are
// tried in order; when all fail or none is configured a synthetic placeholder
// URL is returned, so the call itself never fails.
type ImageService struct {
	cfg    config.ImagesConfig
	client *http.Client
	logger *zap.Logger

	// overridable endpoints for tests
	unsplashURL string
	pexelsURL   string
	pixabayURL  string
}

// NewImageService builds the service.
func NewImageService(cfg config.ImagesConfig, logger *zap.Logger) *ImageService {
	return &ImageService{
		cfg:         cfg,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		unsplashURL: "https://api.unsplash.com/search/photos",
		pexelsURL:   "https://api.pexels.com/v1/search",
		pixabayURL:  "https://pixabay.com/api/",
	}
}

// SearchImage resolves a photo URL for the query.
func (s *ImageService) SearchImage(ctx context.Context, query string) string {
	if query == "" {
		return s.placeholderURL("dish")
	}

	type provider struct {
		name   string
		search func(context.Context, string) (string, error)
	}
	providers := []provider{
		{"unsplash", s.searchUnsplash},
		{"pexels", s.searchPexels},
		{"pixabay", s.searchPixabay},
	}

	for _, p := range providers {
		imageURL, err := p.search(ctx, query)
		if err != nil {
			s.logger.Debug("image provider miss", zap.String("provider", p.name), zap.Error(err))
			continue
		}
		return imageURL
	}
	return s.placeholderURL(query)
}

func (s *ImageService) placeholderURL(query string) string {
	return "https://placehold.co/600x400?text=" + url.QueryEscape(query)
}

func (s *ImageService) searchUnsplash(ctx context.Context, query string) (string, error) {
	if s.cfg.UnsplashAccessKey == "" {
		return "", errors.New("not configured")
	}
	endpoint := fmt.Sprintf("%s?query=%s&per_page=1", s.unsplashURL, url.QueryEscape(query))
	var payload struct {
		Results []struct {
			URLs struct {
				Small string `json:"small"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := s.getJSON(ctx, endpoint, map[string]string{"Authorization": "Client-ID " + s.cfg.UnsplashAccessKey}, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 || payload.Results[0].URLs.Small == "" {
		return "", errors.New("no results")
	}
	return payload.Results[0].URLs.Small, nil
}

func (s *ImageService) searchPexels(ctx context.Context, query string) (string, error) {
	if s.cfg.PexelsAPIKey == "" {
		return "", errors.New("not configured")
	}
	endpoint := fmt.Sprintf("%s?query=%s&per_page=1", s.pexelsURL, url.QueryEscape(query))
	var payload struct {
		Photos []struct {
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := s.getJSON(ctx, endpoint, map[string]string{"Authorization": s.cfg.PexelsAPIKey}, &payload); err != nil {
		return "", err
	}
	if len(payload.Photos) == 0 || payload.Photos[0].Src.Medium == "" {
		return "", errors.New("no results")
	}
	return payload.Photos[0].Src.Medium, nil
}

func (s *ImageService) searchPixabay(ctx context.Context, query string) (string, error) {
	if s.cfg.PixabayAPIKey == "" {
		return "", errors.New("not configured")
	}
	endpoint := fmt.Sprintf("%s?key=%s&q=%s&per_page=3", s.pixabayURL, url.QueryEscape(s.cfg.PixabayAPIKey), url.QueryEscape(query))
	var payload struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}
	if err := s.getJSON(ctx, endpoint, nil, &payload); err != nil {
		return "", err
	}
	if len(payload.Hits) == 0 || payload.Hits[0].WebformatURL == "" {
		return "", errors.New("no results")
	}
	return payload.Hits[0].WebformatURL, nil
}

func (s *ImageService) getJSON(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
