package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tibiaweb/lib/telemetry"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const boostedHeader = `<html><body>
<div id="RightArtwork">
	<img id="Monster" title="Today's boosted creature: Grim Reaper" src="https://static.tibia.com/images/global/header/monsters/grimreaper.gif"/>
	<img id="Boss" title="Today's boosted boss: Goshnar's Cruelty" src="https://static.tibia.com/images/global/header/monsters/goshnarscruelty.gif"/>
</div>
</body></html>`

const newsPage = `<html><body><div class="BoxContent">
<div class="NewsHeadline">
	<img src="https://static.tibia.com/images/global/content/newsicon_development_big.gif"/>
	<div class="NewsHeadlineDate">Jul 24 2026 -</div>
	<div class="NewsHeadlineText">Summer Update Released</div>
</div>
<table><tr><td><p>The summer update is now <b>live</b>!</p></td></tr></table>
<div class="NewsForumLink"><a href="?subtopic=forum&amp;action=thread&amp;threadid=4922830">Discuss on the forum</a></div>
</div></body></html>`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	defer telemetry.SetupForTesting(t, "tibiaweb_client_test")()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL})
}

func TestFetchBoostedCreatures(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/library/", r.URL.Path)
		require.Equal(t, "creatures", r.URL.Query().Get("subtopic"))
		w.Write([]byte(boostedHeader))
	}))

	boosted, err := client.FetchBoostedCreatures(context.Background())
	require.NoError(t, err)
	require.NotNil(t, boosted)
	require.Equal(t, "Grim Reaper", boosted.Creature.Name)
	require.Equal(t, "goshnarscruelty", boosted.Boss.Identifier)
}

func TestFetchNewsSetsID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/news/", r.URL.Path)
		require.Equal(t, "4711", r.URL.Query().Get("id"))
		w.Write([]byte(newsPage))
	}))

	news, err := client.FetchNews(context.Background(), 4711)
	require.NoError(t, err)
	require.NotNil(t, news)
	require.Equal(t, 4711, news.ID)
	require.Equal(t, "Summer Update Released", news.Title)
}

func TestFetchForbidden(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.FetchCharacter(context.Background(), "Galarzaa Fidera")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestFetchUnavailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.FetchWorld(context.Background(), "Gladera")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchOpensSpan(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	recorder := tracetest.NewSpanRecorder()
	provider, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)
	provider.RegisterSpanProcessor(recorder)

	_, err := client.FetchWorld(context.Background(), "Gladera")
	require.ErrorIs(t, err, ErrForbidden)

	var span sdktrace.ReadOnlySpan
	for _, ended := range recorder.Ended() {
		if ended.Name() == "get" {
			span = ended
		}
	}
	require.NotNil(t, span)
	require.Equal(t, codes.Error, span.Status().Code)

	found := false
	for _, attr := range span.Attributes() {
		if attr.Key == "url" {
			found = true
		}
	}
	require.True(t, found)
}

func TestFetchSendsBrowserUserAgent(t *testing.T) {
	var agent string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchKillStatistics(context.Background(), "Gladera")
	require.ErrorIs(t, err, ErrUnavailable)
	require.Contains(t, agent, "Mozilla/5.0")
}
