package realtime

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
)

// firebaseServerValue is the Realtime Database placeholder for the server clock.
var firebaseServerValue = map[string]string{".sv": "timestamp"}

type FirebaseMirror struct {
	client *db.Client
}

func NewFirebaseMirror(ctx context.Context, app *firebase.App) (*FirebaseMirror, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get realtime database client: %w", err)
	}

	return &FirebaseMirror{client: client}, nil
}

func (m *FirebaseMirror) SetPath(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := m.client.NewRef(path).Set(ctx, resolveTimestamps(fields, firebaseServerValue)); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
