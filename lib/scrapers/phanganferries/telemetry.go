package phanganferries

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ferry.lib.scrapers.phanganferries")
var meter = otel.Meter("ferry.lib.scrapers.phanganferries")

var cardsParsed, _ = meter.Int64Counter("cards_parsed")
var cardsSkipped, _ = meter.Int64Counter("cards_skipped")
