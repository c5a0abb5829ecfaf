package providers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/trogers1052/networth-service/internal/cache"
)

const listingCacheTTL = 1 * time.Hour

// Scheme is one mutual fund scheme record from the AMFI NAV listing.
type Scheme struct {
	Code string
	Name string
	NAV  float64
	Date string
}

// AMFIClient downloads the full-market NAV listing published by AMFI as a
// single semicolon-delimited text file and resolves scheme names against it.
type AMFIClient struct {
	url    string
	client *http.Client
	cache  *cache.Cache
}

// NewAMFI creates an AMFI registry client. The cache may be nil.
func NewAMFI(url string, timeout time.Duration, c *cache.Cache) *AMFIClient {
	return &AMFIClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
		cache:  c,
	}
}

// Listing downloads and parses the NAV listing, preserving file order.
func (a *AMFIClient) Listing(ctx context.Context) ([]Scheme, error) {
	text, err := a.download(ctx)
	if err != nil {
		return nil, err
	}

	schemes := parseListing(text)
	if len(schemes) == 0 {
		return nil, fmt.Errorf("%w: listing contained no scheme records", ErrMalformed)
	}
	return schemes, nil
}

// FindScheme resolves a scheme name by case-insensitive substring match
// against the listing, first hit in file order wins.
func (a *AMFIClient) FindScheme(ctx context.Context, name string) (*Scheme, error) {
	schemes, err := a.Listing(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(name)
	for i := range schemes {
		if strings.Contains(strings.ToLower(schemes[i].Name), search) {
			return &schemes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: scheme %q not in AMFI listing", ErrNotFound, name)
}

func (a *AMFIClient) download(ctx context.Context) (string, error) {
	if cached, ok := a.cache.Get(ctx, "amfi:listing"); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: AMFI returned %s", ErrUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := string(body)
	a.cache.Set(ctx, "amfi:listing", text, listingCacheTTL)
	return text, nil
}

// parseListing parses the semicolon-delimited NAV text. Blank lines and
// lines starting with ';' are headers or separators; lines with fewer than
// six fields are fund-house section titles. Records with an unparsable NAV
// (e.g. "N.A.") are skipped.
func parseListing(text string) []Scheme {
	var schemes []Scheme

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		parts := strings.Split(line, ";")
		if len(parts) < 6 {
			continue
		}

		nav, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if err != nil {
			continue
		}

		schemes = append(schemes, Scheme{
			Code: strings.TrimSpace(parts[0]),
			Name: strings.TrimSpace(parts[3]),
			NAV:  nav,
			Date: strings.TrimSpace(parts[5]),
		})
	}
	return schemes
}
