package phanganferries

import (
	"regexp"
	"strings"

	"ferry-scraper/lib/htmlutil"
	"ferry-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

type Prices struct {
	Adult string
	Child string
}

type priceLabel int

const (
	labelNone priceLabel = iota
	labelAdult
	labelChild
)

var (
	adultRegex    = regexp.MustCompile(`(?i)adult`)
	childRegex    = regexp.MustCompile(`(?i)child`)
	currencyRegex = regexp.MustCompile(`\b[A-Z]{3}\s*\d[\d,]*(?:\.\d+)?`)
	numberRegex   = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	// age brackets on labels: "(12+ yrs)", "2-11 years", "12+"
	ageRegex = regexp.MustCompile(`(?i)\(\s*\d+\s*(?:\+|-\s*\d+)?\s*(?:yrs?|years?)?\s*\)|\d+\s*(?:\+|-\s*\d+)?\s*(?:yrs?|years?)\b|\d+\s*\+`)
)

type priceStrategy struct {
	name    string
	extract func(block *goquery.Selection) Prices
}

// tried in order, the first strategy yielding a usable adult price wins.
var priceStrategies = []priceStrategy{
	{name: "positional", extract: positionalPrices},
	{name: "labeled-paragraphs", extract: labeledParagraphPrices},
	{name: "labeled-spans", extract: labeledSpanPrices},
	{name: "currency-regex", extract: currencyRegexPrices},
}

// ParsePrices runs the price strategies against a price block and returns the
// prices with the name of the strategy that found them, the strategy is empty
// if none did.
func ParsePrices(block *goquery.Selection) (Prices, string) {
	if block == nil || block.Length() == 0 {
		return Prices{Adult: Placeholder, Child: Placeholder}, ""
	}
	for _, strategy := range priceStrategies {
		prices := strategy.extract(block)
		if !usablePrice(prices.Adult) {
			continue
		}
		if !usablePrice(prices.Child) {
			prices.Child = Placeholder
		}
		return prices, strategy.name
	}
	return Prices{Adult: Placeholder, Child: Placeholder}, ""
}

func usablePrice(price string) bool {
	return price != "" && price != Placeholder && numberRegex.MatchString(stripAges(price))
}

func stripAges(text string) string {
	return ageRegex.ReplaceAllString(text, " ")
}

func normalizePrice(price string) string {
	return strings.TrimRight(textutil.CollapseSpace(price), ",")
}

// first text-bearing span is the adult price, the second the child price.
func positionalPrices(block *goquery.Selection) Prices {
	var texts []string
	block.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := htmlutil.Text(span)
		if text != "" {
			texts = append(texts, text)
		}
		return len(texts) < 2
	})

	var prices Prices
	if len(texts) > 0 {
		prices.Adult = normalizePrice(texts[0])
	}
	if len(texts) > 1 {
		prices.Child = normalizePrice(texts[1])
	}
	return prices
}

// tokenAfter returns the first price token following the end of a label match.
func tokenAfter(text string, label *regexp.Regexp) (string, bool) {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return priceToken(text[loc[1]:])
}

func priceToken(text string) (string, bool) {
	if token := currencyRegex.FindString(text); token != "" {
		return normalizePrice(token), true
	}
	if token := numberRegex.FindString(stripAges(text)); token != "" {
		return normalizePrice(token), true
	}
	return "", false
}

// text blocks mentioning "adult"/"child" carry the price after the label,
// or the price is the next block when the label stands alone.
func labeledParagraphPrices(block *goquery.Selection) Prices {
	var texts []string
	block.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, htmlutil.Text(s))
	})

	var prices Prices
	find := func(label *regexp.Regexp) string {
		for i, text := range texts {
			if !label.MatchString(text) {
				continue
			}
			if token, ok := tokenAfter(text, label); ok {
				return token
			}
			if i+1 < len(texts) {
				if token, ok := priceToken(texts[i+1]); ok {
					return token
				}
			}
		}
		return ""
	}
	prices.Adult = find(adultRegex)
	prices.Child = find(childRegex)
	return prices
}

func labelOf(text string) priceLabel {
	adult := adultRegex.MatchString(text)
	child := childRegex.MatchString(text)
	switch {
	case adult && !child:
		return labelAdult
	case child && !adult:
		return labelChild
	}
	return labelNone
}

// a price-bearing span is labeled by its own text, else by the element right
// before it, else by its container when the container names a single label.
func spanLabel(span *goquery.Selection) priceLabel {
	if label := labelOf(htmlutil.Text(span)); label != labelNone {
		return label
	}
	if label := labelOf(htmlutil.Text(span.Prev())); label != labelNone {
		return label
	}
	return labelOf(htmlutil.Text(span.Parent()))
}

func labeledSpanPrices(block *goquery.Selection) Prices {
	var prices Prices
	block.Find("span").Each(func(_ int, span *goquery.Selection) {
		token, ok := priceToken(htmlutil.Text(span))
		if !ok {
			return
		}
		switch spanLabel(span) {
		case labelAdult:
			if prices.Adult == "" {
				prices.Adult = token
			}
		case labelChild:
			if prices.Child == "" {
				prices.Child = token
			}
		}
	})
	return prices
}

// the first two currency-prefixed amounts anywhere in the block.
func currencyRegexPrices(block *goquery.Selection) Prices {
	matches := currencyRegex.FindAllString(htmlutil.Text(block), 2)
	var prices Prices
	if len(matches) > 0 {
		prices.Adult = normalizePrice(matches[0])
	}
	if len(matches) > 1 {
		prices.Child = normalizePrice(matches[1])
	}
	return prices
}
