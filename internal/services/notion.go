package services

import (
	"context"
	"fmt"
	"time"

	gnt "github.com/dstotijn/go-notion"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
)

// OfferMirror copies saved offers to a secondary store. It returns the
// remote page id so later updates hit the same page.
type OfferMirror interface {
	Ping(ctx context.Context) error
	Sync(ctx context.Context, offer *models.Offer) (string, error)
}

type notionMirror struct {
	api        *gnt.Client
	databaseID string
	location   *time.Location
}

func NewNotionMirror(token, databaseID string, location *time.Location) OfferMirror {
	return &notionMirror{
		api:        gnt.NewClient(token),
		databaseID: databaseID,
		location:   location,
	}
}

// Ping runs a one-row query to check the database is reachable.
func (m *notionMirror) Ping(ctx context.Context) error {
	_, err := m.api.QueryDatabase(ctx, m.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// Sync creates the offer's page on first save and updates it afterwards.
func (m *notionMirror) Sync(ctx context.Context, offer *models.Offer) (string, error) {
	props := buildOfferPageProperties(offer, m.location)

	if offer.NotionPageID != "" {
		if _, err := m.api.UpdatePage(ctx, offer.NotionPageID, gnt.UpdatePageParams{
			DatabasePageProperties: props,
		}); err != nil {
			return "", fmt.Errorf("failed to update notion page: %w", err)
		}
		return offer.NotionPageID, nil
	}

	page, err := m.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               m.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create notion page: %w", err)
	}

	log.WithFields(log.Fields{
		"offer_id": offer.ID,
		"page_id":  page.ID,
	}).Info("📝 Offer mirrored to Notion")

	return page.ID, nil
}

func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{
		{
			Text: &gnt.Text{
				Content: s,
			},
		},
	}
}

func buildOfferPageProperties(offer *models.Offer, loc *time.Location) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Position is the database title property.
	props["Position"] = gnt.DatabasePageProperty{
		Title: richText(offer.Position),
	}

	if offer.Company != "" {
		props["Company"] = gnt.DatabasePageProperty{
			RichText: richText(offer.Company),
		}
	}

	if offer.Schedule != "" {
		props["Schedule"] = gnt.DatabasePageProperty{
			RichText: richText(offer.Schedule),
		}
	}

	if offer.InterviewState != "" {
		props["Stage"] = gnt.DatabasePageProperty{
			Select: &gnt.SelectOptions{
				Name: string(offer.InterviewState),
			},
		}
	}

	if offer.ContactPerson != "" {
		props["Contact"] = gnt.DatabasePageProperty{
			RichText: richText(offer.ContactPerson),
		}
	}

	if offer.InterviewAddress != "" {
		props["Interview Address"] = gnt.DatabasePageProperty{
			RichText: richText(offer.InterviewAddress),
		}
	}

	if instant, err := InterviewInstant(offer.InterviewDate, offer.InterviewHour, loc); err == nil {
		props["Next Interview"] = gnt.DatabasePageProperty{
			Date: &gnt.Date{
				Start: gnt.NewDateTime(instant, true),
			},
		}
	}

	return props
}
