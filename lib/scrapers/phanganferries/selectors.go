package phanganferries

import (
	"net/url"
	"path"
)

// markup of the search result page, each card is followed by its detail
// subtree as a sibling:
//
//	div.tableout                     one schedule card
//	  div.wione img                  operator logo
//	  div.form-to
//	    div.witwo   p.location h5.time   departure block
//	    div.withree p.location h5.time   arrival block
//	    div.transport-icon img       vessel icons
//	  div.wifive                     price block
//	div.trip-detail-main
//	  ul.nav-tabs[route_id]
//	  div#trip_route-<id>
//	    div.route-detail-left ul.route-info-detailed > li   stops
//	    div.route-detail-right h5                           durations / layovers
//	  div#trip_info-<id>, div#trip_cancel-<id>
const (
	selCard           = "div.tableout"
	selOperator       = "div.wione"
	selEndpoints      = "div.form-to"
	selDeparture      = "div.witwo"
	selArrival        = "div.withree"
	selLocation       = "p.location"
	selTime           = "h5.time"
	selPrice          = "div.wifive"
	selTransportIcons = "div.transport-icon"

	selDetail    = "div.trip-detail-main"
	selRouteTab  = `div[id^="trip_route-"]`
	selNavTabs   = "ul.nav-tabs"
	selStopList  = "div.route-detail-left ul.route-info-detailed"
	selSidePanel = "div.route-detail-right"

	selStopLabel     = "h5"
	selStopPlace     = "h4"
	selStopAddress   = "p.trip-location"
	selStopTime      = "p.trip-time"
	selPrimaryIcons  = "ul.mobtrip-info"
	selTransferIcons = "ul.mobtrip-infoone"

	selInformation  = `div[id^="trip_info-"], div.trip-info`
	selCancellation = `div[id^="trip_cancel-"], div.cancellation-policy`

	routeTabPrefix = "trip_route-"
)

var iconModes = map[string]Mode{
	"icon_ship.png": ModeFerry,
	"icon_bus.png":  ModeBus,
}

// modeFromIcon maps an icon's src (relative or absolute) to a transport mode.
func modeFromIcon(src string) (Mode, bool) {
	if src == "" {
		return "", false
	}
	p := src
	u, err := url.Parse(src)
	if err == nil {
		p = u.Path
	}
	mode, ok := iconModes[path.Base(p)]
	return mode, ok
}
