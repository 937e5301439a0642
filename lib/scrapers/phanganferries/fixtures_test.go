package phanganferries

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseFragment(t testing.TB, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

// a direct ferry with a detail subtree, prices in plain spans.
const directCard = `
<div class="tableout">
  <div class="wione"><img src="/uploads/operator/12_lomprayah.png" alt="Lomprayah"></div>
  <div class="form-to">
    <div class="witwo"><p class="location">Koh Phangan</p><h5 class="time">08:00</h5></div>
    <div class="withree"><p class="location">Koh Samui</p><h5 class="time">08:30</h5></div>
    <div class="transport-icon"><img src="/images/icon_ship.png"></div>
  </div>
  <div class="wifive"><span>THB 400</span><span>THB 300</span></div>
</div>
<div class="trip-detail-main">
  <ul class="nav-tabs" route_id="501"></ul>
  <div id="trip_route-501">
    <div class="route-detail-left">
      <ul class="route-info-detailed">
        <li>
          <h5>Departure</h5>
          <h4>Thong Sala Pier</h4>
          <p class="trip-location">Thong Sala, Koh Phangan</p>
          <p class="trip-time"><b>08:00</b><span>Check-in 30 min before</span></p>
          <ul class="mobtrip-info"><li><img src="/images/icon_ship.png"></li></ul>
        </li>
        <li>
          <h4>Nathon Pier</h4>
          <p class="trip-location">Nathon, Koh Samui</p>
          <p class="trip-time"><b>08:30</b></p>
        </li>
      </ul>
    </div>
    <div class="route-detail-right"><h5>0 Hr. 30 Min.</h5></div>
  </div>
  <div id="trip_info-501">Bring your ticket.</div>
  <div id="trip_cancel-501">No refunds.</div>
  <iframe src="https://maps.google.com/maps?q=9.7100,100.0100"></iframe>
  <a href="https://maps.google.com/maps?q=9.5300,99.9400">map</a>
</div>
`

// ferry then two bus legs, the second transfer only says "same bus".
const transferCard = `
<div class="tableout">
  <div class="wione"><img src="/uploads/operator/77_seatran.png?v=2"></div>
  <div class="form-to">
    <div class="witwo"><p class="location">Koh Phangan</p><h5 class="time">09:00</h5></div>
    <div class="withree"><p class="location">Bangkok</p><h5 class="time">20:00</h5></div>
    <div class="transport-icon">
      <img src="/images/icon_ship.png">
      <img src="/images/icon_bus.png">
      <img src="/images/icon_bus.png">
    </div>
  </div>
  <div class="wifive"><p>Adult: THB 1,250</p><p>Child: THB 900</p></div>
</div>
<div class="trip-detail-main">
  <ul class="nav-tabs"></ul>
  <div id="trip_route-88">
    <div class="route-detail-left">
      <ul class="route-info-detailed">
        <li>
          <h5>Departure</h5>
          <h4>Thong Sala Pier</h4>
          <p class="trip-location">Thong Sala, Koh Phangan</p>
          <p class="trip-time"><b>09:00</b><span>Check-in 30 min before</span></p>
          <ul class="mobtrip-info"><li><img src="/images/icon_ship.png"></li></ul>
        </li>
        <li>
          <h4>Donsak Pier</h4>
          <p class="trip-location">Donsak, Surat Thani</p>
          <p class="trip-time"><b>11:30</b></p>
          <ul class="mobtrip-infoone"><li><img src="/images/icon_bus.png"></li></ul>
        </li>
        <li>
          <h4>Surat Thani Town</h4>
          <p class="trip-location">Talad Kaset<span>Continue on the Same Bus</span></p>
          <p class="trip-time"><b>13:00</b></p>
          <ul class="mobtrip-infoone"></ul>
        </li>
        <li>
          <h4>Khao San Road</h4>
          <p class="trip-location">Bangkok</p>
          <p class="trip-time"><b>20:00</b></p>
        </li>
        <li class="spacer"></li>
      </ul>
    </div>
    <div class="route-detail-right">
      <h5>2 Hr. 30 Min.</h5>
      <h5>Layover 1 Hr. 30 Min.</h5>
      <h5>7 Hr. 0 Min.</h5>
      <h5>Total 11 Hr. 0 Min.</h5>
    </div>
  </div>
  <span data-lat="9.71" data-lng="100.01"></span>
  <span data-lat="bad" data-lng="1"></span>
  <span data-lat="13.75" data-lon="100.49"></span>
</div>
`

const noEndpointsCard = `
<div class="tableout">
  <div class="wione"><img src="/uploads/operator/1_a.png" alt="Nobody"></div>
  <div class="wifive"><span>THB 100</span></div>
</div>
`

// no detail subtree and prices only recoverable from the raw text.
const regexPriceCard = `
<div class="tableout">
  <div class="form-to">
    <div class="witwo"><p class="location">Koh Tao</p><h5 class="time">10:00</h5></div>
    <div class="withree"><p class="location">Chumphon</p><h5 class="time">12:00</h5></div>
  </div>
  <div class="wifive">Fare THB 350 per adult, THB 250 per child</div>
</div>
`

const sameEndpointsCard = `
<div class="tableout">
  <div class="form-to">
    <div class="witwo"><p class="location">Koh Tao</p><h5 class="time">10:00</h5></div>
    <div class="withree"><p class="location">koh tao</p><h5 class="time">12:00</h5></div>
  </div>
</div>
`

func resultsPage(fragments ...string) string {
	page := `<html><body><div class="results">`
	for _, f := range fragments {
		page += f
	}
	return page + `</div></body></html>`
}

var directSegments = []Segment{
	{
		From: Endpoint{
			Location:      "Thong Sala Pier",
			Address:       "Thong Sala, Koh Phangan",
			DepartureTime: "08:00",
			CheckInNote:   "Check-in 30 min before",
		},
		To: Endpoint{
			Location:    "Nathon Pier",
			Address:     "Nathon, Koh Samui",
			ArrivalTime: "08:30",
		},
		Transport: []Mode{ModeFerry},
		Duration:  "0 Hr. 30 Min.",
		Layover:   DefaultLayover,
	},
}

var donsak = Endpoint{
	Location:    "Donsak Pier",
	Address:     "Donsak, Surat Thani",
	ArrivalTime: "11:30",
}

var suratThani = Endpoint{
	Location:    "Surat Thani Town",
	Address:     "Talad Kaset",
	ArrivalTime: "13:00",
}

var transferSegments = []Segment{
	{
		From: Endpoint{
			Location:      "Thong Sala Pier",
			Address:       "Thong Sala, Koh Phangan",
			DepartureTime: "09:00",
			CheckInNote:   "Check-in 30 min before",
		},
		To:        donsak,
		Transport: []Mode{ModeFerry},
		Duration:  "2 Hr. 30 Min.",
		Layover:   DefaultLayover,
	},
	{
		From:      donsak,
		To:        suratThani,
		Transport: []Mode{ModeBus},
		Duration:  Placeholder,
		Layover:   "Layover 1 Hr. 30 Min.",
	},
	{
		From: suratThani,
		To: Endpoint{
			Location:    "Khao San Road",
			Address:     "Bangkok",
			ArrivalTime: "20:00",
		},
		Transport: []Mode{ModeBus},
		Duration:  "7 Hr. 0 Min.",
		Layover:   DefaultLayover,
	},
}
