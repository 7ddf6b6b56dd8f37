package notubiz_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/notubiz"
)

const motionItem = `{"item":{"attributes":{"attribute":[
	{"@attributes":{"id":1},"value":"Motie van de leden Havelaar en Von Gerhardt inzake betaalbare huur"},
	{"@attributes":{"id":45},"value":"Motie"},
	{"@attributes":{"id":62},"value":"Aangenomen"},
	{"@attributes":{"id":15},"value":"2025-03-12 10:00:00"},
	{"@attributes":{"id":17},"value":"not a date"},
	{"@attributes":{"id":2},"value":{"url":"https://api.notubiz.nl/document/1"}},
	{"@attributes":{"id":36},"values":{"value":[
		{"@cdata":"R.B. Havelaar","@attributes":{"id":"901"}},
		{"@cdata":"M.S. von Gerhardt","@attributes":{"id":902}}
	]}},
	{"@attributes":{"id":37},"values":{"value":{"@cdata":"GroenLinks","@attributes":{"id":11}}}},
	{"@attributes":{"id":99},"value":"ignored"}
]}}}`

func TestModuleItem_Motion(t *testing.T) {
	var resp struct {
		Item notubiz.ModuleItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal([]byte(motionItem), &resp))

	m := resp.Item.Motion()
	assert.Equal(t, "Motie van de leden Havelaar en Von Gerhardt inzake betaalbare huur", m.Title)
	assert.Equal(t, "Motie", m.Type)
	assert.Equal(t, "Aangenomen", m.Result)
	require.NotNil(t, m.SubmissionDate)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), *m.SubmissionDate)
	assert.Nil(t, m.ResolutionDate)
	assert.Equal(t, "https://api.notubiz.nl/document/1", m.DocumentURL)
	assert.Empty(t, m.ResolutionDocumentURL)

	require.Len(t, m.Submitters, 2)
	assert.Equal(t, "R.B. Havelaar", m.Submitters[0].Name)
	require.NotNil(t, m.Submitters[0].ID)
	assert.Equal(t, int64(901), *m.Submitters[0].ID)
	assert.Equal(t, int64(902), *m.Submitters[1].ID)

	// A single value object is treated as a one-element list.
	assert.Equal(t, []string{"GroenLinks"}, m.Parties)
}

func TestMeeting_ModuleItemIDs(t *testing.T) {
	raw := `{"module_items":[{"id":1}],"agenda_items":[
		{"module_items":[{"id":2}],"agenda_items":[{"module_items":[{"id":3},{"id":2}]}]},
		{"module_items":[{"id":4}]}
	]}`
	var m notubiz.Meeting
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.Equal(t, []int64{1, 2, 3, 2, 4}, m.ModuleItemIDs())
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "281", r.URL.Query().Get("organisation_id"))
		assert.Equal(t, "2025-01-01 00:00:00", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2025-12-31 23:59:59", r.URL.Query().Get("date_to"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1.10.8", r.URL.Query().Get("version"))
		_, _ = w.Write([]byte(`{"events":[
			{"id":10,"attributes":[{"id":1,"value":"Raadsvergadering"}]},
			{"id":11,"announcement":true},
			{"id":12,"canceled":1},
			{"id":13}
		]}`))
	})
	mux.HandleFunc("/events/meetings/10", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meeting":{"agenda_items":[{"module_items":[{"id":100},{"id":101}]}]}}`))
	})
	mux.HandleFunc("/events/meetings/13", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meeting":{"module_items":[{"id":100},{"id":102}]}}`))
	})
	mux.HandleFunc("/events/meetings/11", func(w http.ResponseWriter, _ *http.Request) {
		t.Error("announcement should not be fetched")
	})
	mux.HandleFunc("/modules/0/items/100", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(motionItem))
	})
	mux.HandleFunc("/modules/0/items/101", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"item":{"attributes":{"attribute":[{"@attributes":{"id":45},"value":"Motie"}]}}}`))
	})
	mux.HandleFunc("/modules/0/items/102", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestClient_FetchMotions(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := notubiz.NewClient(notubiz.Config{
		BaseURL:        srv.URL,
		OrganisationID: 281,
		Version:        "1.10.8",
	})

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	motions, err := c.FetchMotions(context.Background(), from, to)
	require.NoError(t, err)

	// 100 is kept once, 101 has no title, 102 fails.
	require.Len(t, motions, 1)
	assert.Equal(t, int64(100), motions[0].ItemID)
	assert.Equal(t, int64(10), motions[0].MeetingEventID)
	assert.Equal(t, "Motie", motions[0].Type)
}

func TestClient_EventsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := notubiz.NewClient(notubiz.Config{BaseURL: srv.URL, OrganisationID: 281, Version: "1.10.8"})
	_, err := c.FetchMotions(context.Background(), time.Now(), time.Now())
	assert.Error(t, err)
}

func TestEvent_Title(t *testing.T) {
	var ev notubiz.Event
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"attributes":[{"id":"1","value":"Commissie Wonen"}]}`), &ev))
	assert.Equal(t, "Commissie Wonen", ev.Title())

	var bare notubiz.Event
	require.NoError(t, json.Unmarshal([]byte(`{"id":8}`), &bare))
	assert.Equal(t, "Event 8", bare.Title())
}
