package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `Scheme Code;ISIN Div Payout/ ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date
;separator line

Open Ended Schemes ( Debt Scheme - Banking and PSU Fund )

Aditya Birla Sun Life Mutual Fund

119551;INF209KA12Z1;INF209KA13Z9;Aditya Birla Sun Life Banking & PSU Debt Fund - DIRECT - IDCW;103.9547;01-Sep-2026
119552;INF209K01YM2;-;XYZ Growth Fund - Direct Plan;45.6700;01-Sep-2026
119553;INF209K01ZZ9;-;Unpriced Scheme;N.A.;01-Sep-2026
`

func newAMFIServer(t *testing.T, handler http.HandlerFunc) *AMFIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAMFI(srv.URL, 5*time.Second, nil)
}

func TestAMFIListing(t *testing.T) {
	ctx := context.Background()

	t.Run("parses records and skips headers and section titles", func(t *testing.T) {
		client := newAMFIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(sampleListing))
		})

		schemes, err := client.Listing(ctx)
		require.NoError(t, err)

		// header row, separator, section titles, and the N.A. NAV line
		// all drop out
		require.Len(t, schemes, 2)
		assert.Equal(t, "119551", schemes[0].Code)
		assert.Equal(t, "Aditya Birla Sun Life Banking & PSU Debt Fund - DIRECT - IDCW", schemes[0].Name)
		assert.Equal(t, 103.9547, schemes[0].NAV)
		assert.Equal(t, "01-Sep-2026", schemes[0].Date)
		assert.Equal(t, "119552", schemes[1].Code)
	})

	t.Run("download failure means unavailable", func(t *testing.T) {
		client := newAMFIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Listing(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("listing with no records means malformed", func(t *testing.T) {
		client := newAMFIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(";only a separator\n\n"))
		})

		_, err := client.Listing(ctx)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestAMFIFindScheme(t *testing.T) {
	ctx := context.Background()

	okClient := func(t *testing.T) *AMFIClient {
		return newAMFIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(sampleListing))
		})
	}

	t.Run("matches case-insensitive substring", func(t *testing.T) {
		scheme, err := okClient(t).FindScheme(ctx, "xyz growth")
		require.NoError(t, err)
		assert.Equal(t, "119552", scheme.Code)
		assert.InDelta(t, 45.67, scheme.NAV, 0.0001)
	})

	t.Run("first match in listing order wins", func(t *testing.T) {
		scheme, err := okClient(t).FindScheme(ctx, "fund")
		require.NoError(t, err)
		assert.Equal(t, "119551", scheme.Code)
	})

	t.Run("unknown scheme means not found", func(t *testing.T) {
		_, err := okClient(t).FindScheme(ctx, "Imaginary Fund")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
