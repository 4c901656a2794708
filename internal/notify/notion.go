package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"
)

// PageService is the slice of the Notion API the notifier needs. It enables
// mocking in tests.
type PageService interface {
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
}

// NotionPages is the concrete PageService backed by the official Notion SDK.
type NotionPages struct {
	client *notionapi.Client
}

// NewNotionPages creates a PageService with the provided API token.
func NewNotionPages(token string) *NotionPages {
	return &NotionPages{client: notionapi.NewClient(notionapi.Token(token))}
}

func (n *NotionPages) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	}
	return n.client.Page.Create(ctx, req)
}

// NotionNotifier appends each notification as a page in a Notion database,
// giving the dashboard a lightweight audit trail. Delivery runs on a single
// background worker so callers never wait on the Notion API; failed
// deliveries are logged and dropped, per the fire-and-forget contract.
type NotionNotifier struct {
	pages      PageService
	databaseID string
	log        zerolog.Logger

	queue chan Notification
	done  chan struct{}
	once  sync.Once
}

// NewNotionNotifier creates a Notion-backed sink and starts its delivery
// worker. Call Close to drain the queue on shutdown.
func NewNotionNotifier(pages PageService, databaseID string, log zerolog.Logger) *NotionNotifier {
	n := &NotionNotifier{
		pages:      pages,
		databaseID: databaseID,
		log:        log,
		queue:      make(chan Notification, 64),
		done:       make(chan struct{}),
	}
	go n.deliver()
	return n
}

func (n *NotionNotifier) Success(message string) { n.enqueue(LevelSuccess, message) }
func (n *NotionNotifier) Error(message string)   { n.enqueue(LevelError, message) }
func (n *NotionNotifier) Info(message string)    { n.enqueue(LevelInfo, message) }

func (n *NotionNotifier) enqueue(level Level, message string) {
	select {
	case n.queue <- Notification{Level: level, Message: message}:
	default:
		// Queue full: drop rather than block a mutation on the audit trail.
		n.log.Warn().Str("message", message).Msg("Notification queue full, dropping")
	}
}

func (n *NotionNotifier) deliver() {
	defer close(n.done)

	for notification := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		_, err := n.pages.CreatePage(ctx, n.databaseID, notificationProperties(notification))
		cancel()

		if err != nil {
			n.log.Warn().
				Err(err).
				Str("level", string(notification.Level)).
				Str("message", notification.Message).
				Msg("Failed to deliver notification to Notion")
		}
	}
}

// Close stops accepting notifications and waits for queued ones to be
// delivered.
func (n *NotionNotifier) Close() error {
	n.once.Do(func() {
		close(n.queue)
	})
	<-n.done
	return nil
}

// notificationProperties maps a notification onto the Notifications database
// schema: a Message title, a Level select and a Timestamp date.
func notificationProperties(notification Notification) notionapi.Properties {
	now := notionapi.Date(time.Now())
	return notionapi.Properties{
		"Message": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: notification.Message},
				},
			},
		},
		"Level": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(notification.Level)},
		},
		"Timestamp": notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &now},
		},
	}
}

var _ Notifier = (*NotionNotifier)(nil)
