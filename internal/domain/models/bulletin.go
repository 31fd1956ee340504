package models

import "time"

// BulletinLink points at one published bulletin file as found on a listing page.
// Href is kept as it appears in the page (relative or absolute).
type BulletinLink struct {
	Href string
	Date time.Time
}

// ListingPage is the result of crawling one page of the bulletin index.
type ListingPage struct {
	Page    int
	Links   []BulletinLink
	HasNext bool
}
