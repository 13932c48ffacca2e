package notification

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/AvalonleFae/ezevent/config"
)

// FCMChannel implements Channel for Firebase Cloud Messaging
type FCMChannel struct {
	client *messaging.Client
	ctx    context.Context
}

// NewFCMChannel initializes FCM with service account credentials
func NewFCMChannel(cfg *config.Config) Channel {
	ctx := context.Background()

	if cfg.FCMCredentialsPath == "" {
		log.Println("⚠️  FCM not configured (FCM_CREDENTIALS_PATH missing)")
		return &FCMChannel{client: nil, ctx: ctx}
	}

	opt := option.WithCredentialsFile(cfg.FCMCredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FCMProjectID}, opt)
	if err != nil {
		log.Printf("❌ Error initializing Firebase app: %v\n", err)
		return &FCMChannel{client: nil, ctx: ctx}
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("❌ Error getting FCM client: %v\n", err)
		return &FCMChannel{client: nil, ctx: ctx}
	}

	log.Println("✅ FCM initialized successfully")
	return &FCMChannel{
		client: client,
		ctx:    ctx,
	}
}

// Send pushes to device tokens. Subject becomes the notification title.
func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		message := &messaging.Message{
			Token: recipients[0],
			Notification: &messaging.Notification{
				Title: subject,
				Body:  body,
			},
		}
		_, err := f.client.Send(f.ctx, message)
		return err
	}

	multicast := &messaging.MulticastMessage{
		Tokens: recipients,
		Notification: &messaging.Notification{
			Title: subject,
			Body:  body,
		},
	}
	resp, err := f.client.SendEachForMulticast(f.ctx, multicast)
	if err != nil {
		return err
	}
	if resp.FailureCount > 0 {
		log.Printf("⚠️ FCM multicast: %d of %d sends failed", resp.FailureCount, len(recipients))
	}
	return nil
}
