package spimex

import "fmt"

// FetchError reports a transport failure or a non-2xx response from the exchange.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LinkError reports a bulletin link whose href does not carry a valid oil_xls_YYYYMMDD date.
type LinkError struct {
	Href string
	Err  error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("bulletin link %q: %v", e.Href, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }
