package mess_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mess "github.com/sudharshan-del/Hostel-Management"
	"github.com/sudharshan-del/Hostel-Management/catalog"
	"github.com/sudharshan-del/Hostel-Management/server"
)

func startServer(t *testing.T, token string) (*mess.Service, string) {
	t.Helper()
	svc := mess.New()
	require.NoError(t, svc.Start(context.Background()))
	ts := httptest.NewServer(server.New(svc, server.Config{AdminToken: token}).Handler())
	t.Cleanup(func() {
		ts.Close()
		svc.Close()
	})
	return svc, ts.URL
}

func TestClientRoundTrip(t *testing.T) {
	_, url := startServer(t, "")
	c := mess.NewClient(url + "/")
	ctx := context.Background()

	for _, v := range []mess.Vote{mess.Good, mess.Average, mess.Average} {
		require.NoError(t, c.SubmitVote(ctx, v))
	}

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, mess.Stats{Good: 1, Average: 2}, stats)

	menu, err := c.Menu(ctx, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, menu.Breakfast)
	assert.NotNil(t, menu.Dinner)
}

func TestClientAdmin(t *testing.T) {
	svc, url := startServer(t, "s3cret")
	ctx := context.Background()
	item := catalog.Item{Item: "Masala Dosa", Carbs: "60g", Fat: "14g", Protein: "9g"}

	err := mess.NewClient(url).UpdateMenu(ctx, time.Sunday, catalog.Breakfast, item)
	var apiErr *mess.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "admin token required", apiErr.Message)
	assert.ErrorIs(t, err, mess.ErrRequestFailed)

	c := mess.NewClient(url, mess.WithAdminToken("s3cret"))
	require.NoError(t, c.UpdateMenu(ctx, time.Sunday, catalog.Breakfast, item))

	menu, err := svc.Menu(ctx, time.Sunday)
	require.NoError(t, err)
	require.NotNil(t, menu.Breakfast)
	assert.Equal(t, item, *menu.Breakfast)
}

func TestClientServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store offline", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := mess.NewClient(ts.URL).Stats(context.Background())
	var apiErr *mess.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "store offline", apiErr.Message)
}

func TestClientUpdateMenuPipeInItem(t *testing.T) {
	svc, url := startServer(t, "s3cret")
	ctx := context.Background()
	item := catalog.Item{Item: "Dal | Rice", Carbs: "70g", Fat: "8g", Protein: "15g"}

	c := mess.NewClient(url, mess.WithAdminToken("s3cret"))
	require.NoError(t, c.UpdateMenu(ctx, time.Wednesday, catalog.Lunch, item))

	menu, err := svc.Menu(ctx, time.Wednesday)
	require.NoError(t, err)
	require.NotNil(t, menu.Lunch)
	assert.Equal(t, item, *menu.Lunch)
}

func TestClientAdminTokenOptionOrder(t *testing.T) {
	_, url := startServer(t, "s3cret")
	ctx := context.Background()
	item := catalog.Item{Item: "Poha", Carbs: "45g", Fat: "6g", Protein: "5g"}

	for name, opts := range map[string][]mess.ClientOption{
		"TokenFirst": {mess.WithAdminToken("s3cret"), mess.WithHTTPClient(&http.Client{})},
		"TokenLast":  {mess.WithHTTPClient(&http.Client{}), mess.WithAdminToken("s3cret")},
	} {
		t.Run(name, func(t *testing.T) {
			c := mess.NewClient(url, opts...)
			require.NoError(t, c.UpdateMenu(ctx, time.Monday, catalog.Breakfast, item))
		})
	}
}
