package spimex

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/guttosm/spimexpulse/internal/domain/models"
)

const (
	listingPath      = "/markets/oil_products/trades/results?page=page-%d"
	bulletinSuffix   = ".xls"
	bulletinDateFmt  = "20060102"
	nextPageAnchorRU = "Вперед"
)

var bulletinDateRe = regexp.MustCompile(`oil_xls_(\d{8})`)

// ListingURL returns the index page URL for a 1-based page number.
func ListingURL(base string, page int) string {
	return base + fmt.Sprintf(listingPath, page)
}

// ListPage downloads index page n and extracts its bulletin links in document order.
func (c *Client) ListPage(ctx context.Context, page int) (models.ListingPage, error) {
	url := ListingURL(c.baseURL, page)
	body, contentType, err := c.get(ctx, url)
	if err != nil {
		return models.ListingPage{}, err
	}

	out, err := ParseListing(body, contentType)
	if err != nil {
		return models.ListingPage{}, fmt.Errorf("page %d: %w", page, err)
	}
	out.Page = page

	c.log.Debug().Int("page", page).Int("links", len(out.Links)).Bool("has_next", out.HasNext).Msg("listing page parsed")
	return out, nil
}

// ParseListing extracts bulletin links and the next-page marker from an index page body.
// contentType is used to pick the body charset; empty means sniff from the document.
func ParseListing(body []byte, contentType string) (models.ListingPage, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return models.ListingPage{}, fmt.Errorf("decode listing: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.ListingPage{}, fmt.Errorf("parse listing html: %w", err)
	}

	var (
		page     models.ListingPage
		firstErr error
	)
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !isBulletinHref(href) {
			return true
		}
		d, err := BulletinDate(href)
		if err != nil {
			firstErr = err
			return false
		}
		page.Links = append(page.Links, models.BulletinLink{Href: href, Date: d})
		return true
	})
	if firstErr != nil {
		return models.ListingPage{}, firstErr
	}

	// The anchor text must be exactly "Вперед"; padded or decorated labels do not count.
	page.HasNext = doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Text() == nextPageAnchorRU
	}).Length() > 0

	return page, nil
}

// isBulletinHref reports whether href, with any query string stripped, ends in .xls.
func isBulletinHref(href string) bool {
	path, _, _ := strings.Cut(href, "?")
	return strings.HasSuffix(path, bulletinSuffix)
}

// BulletinDate extracts the trading date encoded as oil_xls_YYYYMMDD in href.
// The date is local midnight, matching how the cutoff is expressed.
func BulletinDate(href string) (time.Time, error) {
	m := bulletinDateRe.FindStringSubmatch(href)
	if m == nil {
		return time.Time{}, &LinkError{Href: href, Err: fmt.Errorf("no oil_xls_YYYYMMDD date")}
	}
	d, err := time.ParseInLocation(bulletinDateFmt, m[1], time.Local)
	if err != nil {
		return time.Time{}, &LinkError{Href: href, Err: err}
	}
	return d, nil
}
