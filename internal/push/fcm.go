// Package push delivers FCM notifications to registered device tokens.
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps the Firebase messaging client. A nil Client is valid and
// drops messages, so the server keeps working without FCM credentials.
type Client struct {
	messaging *messaging.Client
}

func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	msg, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}
	return &Client{messaging: msg}, nil
}

func (c *Client) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if c == nil || c.messaging == nil {
		return nil
	}
	_, err := c.messaging.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	return err
}
