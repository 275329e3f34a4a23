package booking

import (
	"fmt"
	"sort"
)

// Route identifies a tour variant. The set of routes is closed.
type Route string

const (
	Route4Day Route = "4d"
	Route2Day Route = "2d"
)

// DefaultRoute is selected when nothing else is configured
const DefaultRoute = Route4Day

// ContactURL is where sold-out dates point customers
const ContactURL = "https://happygringotours.com/contact/"

// RouteInfo describes a route for display and booking
type RouteInfo struct {
	Key        Route
	Title      string
	BookingURL string
}

var routes = map[Route]RouteInfo{
	Route4Day: {
		Key:        Route4Day,
		Title:      "Inca Trail 4 Days",
		BookingURL: "https://happygringotours.com/tour/4-day-inca-trail-to-machu-picchu-best-inca-trailtours/",
	},
	Route2Day: {
		Key:        Route2Day,
		Title:      "Inca Trail 2 Days",
		BookingURL: "https://happygringotours.com/tour/two-day-inca-trail-to-machu-picchu-short-inca-trail-peru/",
	},
}

// ParseRoute validates a route key
func ParseRoute(key string) (Route, error) {
	r := Route(key)
	if _, ok := routes[r]; !ok {
		return "", fmt.Errorf("unknown route %q (expected one of %v)", key, Routes())
	}
	return r, nil
}

// Valid reports whether r belongs to the route enumeration
func (r Route) Valid() bool {
	_, ok := routes[r]
	return ok
}

// Info returns the built-in description of the route
func (r Route) Info() (RouteInfo, bool) {
	info, ok := routes[r]
	return info, ok
}

// String returns the wire representation
func (r Route) String() string {
	return string(r)
}

// Routes lists all route keys in a stable order
func Routes() []Route {
	keys := make([]Route, 0, len(routes))
	for k := range routes {
		keys = append(keys, k)
	}
	// 4d first, matching the order of the route selector
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}

// Links resolves outbound URLs for cells, with optional per-route overrides
type Links struct {
	Contact  string
	Bookings map[Route]string
}

// DefaultLinks returns the built-in contact and booking URLs
func DefaultLinks() Links {
	bookings := make(map[Route]string, len(routes))
	for k, info := range routes {
		bookings[k] = info.BookingURL
	}
	return Links{Contact: ContactURL, Bookings: bookings}
}

// BookingURL returns the booking page for the route
func (l Links) BookingURL(r Route) string {
	if u, ok := l.Bookings[r]; ok && u != "" {
		return u
	}
	if info, ok := routes[r]; ok {
		return info.BookingURL
	}
	return ""
}

// ContactURL returns the contact page, falling back to the built-in one
func (l Links) ContactURL() string {
	if l.Contact != "" {
		return l.Contact
	}
	return ContactURL
}
