//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoskal/makersnap"
	"github.com/jmoskal/makersnap/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Loader implements makersnap.PageLoader.
var _ makersnap.PageLoader = (*rod.Loader)(nil)

func TestLoader_Load_ClientRenderedMarker(t *testing.T) {
	t.Parallel()

	// The marker element is added by JavaScript after load, the way the
	// real platform hydrates its model grid.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Profile</title></head>
<body>
<h1>darionji</h1>
<div id="grid"></div>
<script>
setTimeout(function() {
	var card = document.createElement('div');
	card.setAttribute('data-trackid', 'm-1');
	card.textContent = 'Widget 99 12';
	document.getElementById('grid').appendChild(card);
}, 100);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	loader, err := rod.NewLoader(rod.WithMarkerTimeout(10 * time.Second))
	require.NoError(t, err)
	defer loader.Close()

	page, err := loader.Load(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.True(t, page.MarkerFound)
	assert.Contains(t, page.HTML, `data-trackid="m-1"`)
	assert.Contains(t, page.HTML, "darionji")
	assert.NotEmpty(t, page.Screenshot, "expected a PNG screenshot")
}

func TestLoader_Load_DegradedModeOnMarkerTimeout(t *testing.T) {
	t.Parallel()

	// A page that never renders the marker: the wait budget expires but
	// the load still succeeds with the DOM as-is.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>darionji</h1></body></html>`))
	}))
	defer srv.Close()

	loader, err := rod.NewLoader(rod.WithMarkerTimeout(500 * time.Millisecond))
	require.NoError(t, err)
	defer loader.Close()

	page, err := loader.Load(context.Background(), srv.URL)

	require.NoError(t, err, "marker-wait timeout must not fail the run")
	assert.False(t, page.MarkerFound)
	assert.Contains(t, page.HTML, "darionji")
}

func TestLoader_Load_NavigationFailure(t *testing.T) {
	t.Parallel()

	loader, err := rod.NewLoader(rod.WithNavTimeout(3 * time.Second))
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Load(context.Background(), "http://127.0.0.1:1/@nobody")

	require.Error(t, err)
	assert.Equal(t, makersnap.ENAVIGATION, makersnap.ErrorCode(err))
}

func TestLoader_Load_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // never respond
	}))
	defer srv.Close()

	loader, err := rod.NewLoader()
	require.NoError(t, err)
	defer loader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err = loader.Load(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_Load_SendsConfiguredUserAgent(t *testing.T) {
	t.Parallel()

	gotUA := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case gotUA <- r.UserAgent():
		default:
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	loader, err := rod.NewLoader(
		rod.WithUserAgent("makersnap-test/1.0"),
		rod.WithMarkerTimeout(500*time.Millisecond),
	)
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Load(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "makersnap-test/1.0", <-gotUA)
}
