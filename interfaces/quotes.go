package interfaces

import (
	"context"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
)

type (
	QuotePublisher interface {
		PublishQuote(ctx context.Context, quote models.Quote) error
		Close() error
	}

	QuoteRecorder interface {
		RecordQuote(quote models.Quote) (uint, error)
		RecentQuotes(limit int) ([]models.Quote, error)
	}
)
