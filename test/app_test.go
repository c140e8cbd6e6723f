package test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulletin/internal/platform/metrics"
	"bulletin/internal/subscription/handler"
	"bulletin/internal/subscription/models"
	"bulletin/internal/subscription/service"
	"bulletin/internal/subscription/store"
	"bulletin/internal/subscription/token"
	httptransport "bulletin/internal/transport/http"
	"bulletin/pkg/domain"
)

type capturedEmail struct {
	Recipient string
	TextBody  string
	HTMLBody  string
}

// capturingNotifier records outbound messages so tests can follow the
// confirmation link the way a subscriber would.
type capturingNotifier struct {
	emails []capturedEmail
}

func (n *capturingNotifier) Send(_ context.Context, recipient domain.SubscriberEmail, _, htmlBody, textBody string) error {
	n.emails = append(n.emails, capturedEmail{
		Recipient: recipient.String(),
		TextBody:  textBody,
		HTMLBody:  htmlBody,
	})
	return nil
}

type testApp struct {
	server   *httptest.Server
	store    *store.Memory
	notifier *capturingNotifier
}

// spawnApp assembles the full router against an in-memory store. The server's
// own address doubles as the base URL so confirmation links are followable.
func spawnApp(t *testing.T) *testApp {
	t.Helper()

	memory := store.NewMemory()
	notifier := &capturingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	// The base URL is only known once the listener is up, so start the server
	// with an indirection and install the real router after.
	var h http.Handler
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	svc := service.New(memory, memory, notifier, token.NewGenerator(), server.URL, logger, m)
	h = httptransport.NewRouter(handler.New(svc, logger), logger)

	return &testApp{server: server, store: memory, notifier: notifier}
}

func (a *testApp) postSubscription(t *testing.T, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(a.server.URL+"/subscriptions", "application/x-www-form-urlencoded", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

// confirmationLink pulls the single URL out of the captured plaintext body.
func confirmationLink(t *testing.T, textBody string) string {
	t.Helper()
	for _, field := range strings.Fields(textBody) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			parsed, err := url.Parse(field)
			require.NoError(t, err)
			return parsed.String()
		}
	}
	t.Fatalf("no confirmation link found in body: %q", textBody)
	return ""
}

func TestHealthCheckReturns200(t *testing.T) {
	app := spawnApp(t)

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestSubscribePersistsAPendingSubscriber(t *testing.T) {
	app := spawnApp(t)

	resp := app.postSubscription(t, "name=le%20guin&email=ursula_le_guin%40gmail.com")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	subscribers, tokens := app.store.Counts()
	assert.Equal(t, 1, subscribers)
	assert.Equal(t, 1, tokens)

	saved, ok := app.store.SubscriberByEmail("ursula_le_guin@gmail.com")
	require.True(t, ok)
	assert.Equal(t, "le guin", saved.Name.String())
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Len(t, app.store.TokensFor(saved.ID), 1)
}

func TestSubscribeWithMissingFieldsPersistsNothing(t *testing.T) {
	app := spawnApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", "name=le%20guin"},
		{"missing name", "email=ursula_le_guin%40gmail.com"},
		{"empty body", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := app.postSubscription(t, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	subscribers, _ := app.store.Counts()
	assert.Zero(t, subscribers)
	assert.Empty(t, app.notifier.emails)
}

func TestTheConfirmationLinkConfirmsTheSubscriber(t *testing.T) {
	app := spawnApp(t)

	resp := app.postSubscription(t, "name=le%20guin&email=ursula_le_guin%40gmail.com")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, app.notifier.emails, 1)
	sent := app.notifier.emails[0]
	assert.Equal(t, "ursula_le_guin@gmail.com", sent.Recipient)

	link := confirmationLink(t, sent.TextBody)
	assert.Contains(t, sent.HTMLBody, link)

	confirmResp, err := http.Get(link)
	require.NoError(t, err)
	defer confirmResp.Body.Close()
	assert.Equal(t, http.StatusOK, confirmResp.StatusCode)

	saved, ok := app.store.SubscriberByEmail("ursula_le_guin@gmail.com")
	require.True(t, ok)
	assert.Equal(t, models.StatusConfirmed, saved.Status)
}

func TestReConfirmingIsANoOp(t *testing.T) {
	app := spawnApp(t)

	resp := app.postSubscription(t, "name=le%20guin&email=ursula_le_guin%40gmail.com")
	resp.Body.Close()

	link := confirmationLink(t, app.notifier.emails[0].TextBody)

	for i := 0; i < 2; i++ {
		confirmResp, err := http.Get(link)
		require.NoError(t, err)
		confirmResp.Body.Close()
		assert.Equal(t, http.StatusOK, confirmResp.StatusCode)
	}

	saved, _ := app.store.SubscriberByEmail("ursula_le_guin@gmail.com")
	assert.Equal(t, models.StatusConfirmed, saved.Status)
}

func TestConfirmWithUnknownTokenIsRejected(t *testing.T) {
	app := spawnApp(t)

	resp, err := http.Get(app.server.URL + "/subscriptions/confirm?subscription_token=does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	subscribers, _ := app.store.Counts()
	assert.Zero(t, subscribers)
}

func TestConfirmWithoutTokenIsRejectedWith400(t *testing.T) {
	app := spawnApp(t)

	resp, err := http.Get(app.server.URL + "/subscriptions/confirm")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
