package formsclient

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/project-prioritization/internal/config"
	"github.com/jakechorley/project-prioritization/pkg/utils"
)

// Client wraps the Google Forms API client
type Client struct {
	service *forms.Service
}

// NewClient creates a new Forms client using an existing OAuth token.
// The token should already carry every scope the tool needs.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	service, err := forms.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create forms service: %w", err)
	}

	return &Client{service: service}, nil
}
