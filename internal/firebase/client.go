package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps the Firebase services this service depends on: Firestore for
// the user/task/habit documents and Cloud Messaging for push delivery.
type Client struct {
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// NewClient creates a new Firebase client with Firestore and Messaging access.
// When credJSON is empty, Application Default Credentials are used.
func NewClient(ctx context.Context, projectID, credJSON string) (*Client, error) {
	config := &firebase.Config{
		ProjectID: projectID,
	}

	var opts []option.ClientOption
	if credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to get Messaging client: %w", err)
	}

	return &Client{
		Firestore: firestoreClient,
		Messaging: messagingClient,
	}, nil
}

// Close closes the Firestore client. The Messaging client holds no
// connection state of its own.
func (c *Client) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
