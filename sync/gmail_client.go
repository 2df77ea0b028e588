// ABOUTME: Google Gmail API client for email lead import
// ABOUTME: Wraps the Gmail service behind the small MessageSource interface the importer needs
package sync

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const maxGmailResults = 500 // Gmail API max per page

// MessageSource lists and fetches mailbox messages.
type MessageSource interface {
	ListMessageIDs(ctx context.Context, query string) ([]string, error)
	// GetMessage returns at least the From and Subject headers of a message.
	GetMessage(ctx context.Context, id string) (*gmail.Message, error)
}

type GmailSource struct {
	service *gmail.Service
}

// NewGmailClient creates a Gmail-backed MessageSource.
func NewGmailClient(ctx context.Context, oauthConfig *oauth2.Config, token *oauth2.Token) (*GmailSource, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	client := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &GmailSource{service: service}, nil
}

func (g *GmailSource) ListMessageIDs(ctx context.Context, query string) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		call := g.service.Users.Messages.List("me").
			Q(query).
			MaxResults(maxGmailResults).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages: %w", err)
		}
		if response == nil {
			break
		}
		for _, msg := range response.Messages {
			ids = append(ids, msg.Id)
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return ids, nil
}

func (g *GmailSource) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	message, err := g.service.Users.Messages.Get("me", id).
		Format("metadata").
		MetadataHeaders("From", "Subject", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}
	return message, nil
}
