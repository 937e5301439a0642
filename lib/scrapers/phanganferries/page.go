package phanganferries

import (
	"context"
	"fmt"

	"ferry-scraper/lib/htmlutil"
	"ferry-scraper/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_card_parse       = "card.parse"
	report_record_assemble  = "record.assemble"
	report_page_parse       = "page.parse"
	report_page_cards_found = "page.cards"
)

// Parser turns search result pages into records.
type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Parser{tel: telemetry.NewScopedAPI("phanganferries", tel)}
}

// findDetail returns the detail subtree following a card, stopping at the
// next card so a card without details never borrows its neighbour's.
func findDetail(card *goquery.Selection) *goquery.Selection {
	return card.NextUntil(selCard).Filter(selDetail).First()
}

// ParseDetail parses a detail subtree, nil if the selection is empty.
func ParseDetail(detail *goquery.Selection) *Detail {
	if detail == nil || detail.Length() == 0 {
		return nil
	}
	return &Detail{
		Itinerary: ParseItinerary(detail),
		Metadata:  ParseMetadata(detail),
	}
}

// ParsePage parses a page of html, one record is returned per well-formed card.
func (p Parser) ParsePage(ctx context.Context, page, searchDate string) ([]Record, error) {
	doc, err := htmlutil.ParseDocument(ctx, page)
	if err != nil {
		p.tel.ReportBroken(report_page_parse, err, searchDate)
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return p.ParseDocument(ctx, doc, searchDate), nil
}

// ParseDocument never fails as a whole, cards that cannot be parsed are
// reported and skipped.
func (p Parser) ParseDocument(ctx context.Context, doc *goquery.Document, searchDate string) []Record {
	_, span := tracer.Start(ctx, "ParseDocument")
	defer span.End()

	cards := doc.Find(selCard)
	p.tel.ReportDebug(report_page_cards_found, searchDate, cards.Length())

	records := make([]Record, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		parsed, err := ParseCard(card, searchDate)
		if err != nil {
			cardsSkipped.Add(ctx, 1)
			p.tel.ReportWarning(report_card_parse, fmt.Errorf("card %d: %w", i+1, err), searchDate)
			return
		}

		record, err := Assemble(parsed, ParseDetail(findDetail(card)))
		if err != nil {
			cardsSkipped.Add(ctx, 1)
			p.tel.ReportWarning(report_record_assemble, fmt.Errorf("card %d: %w", i+1, err), searchDate)
			return
		}
		records = append(records, record)
	})

	cardsParsed.Add(ctx, int64(len(records)))
	span.SetAttributes(
		attribute.Int("custom.cards", cards.Length()),
		attribute.Int("custom.records", len(records)),
	)
	return records
}
