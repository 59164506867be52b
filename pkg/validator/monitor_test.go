package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpulse/pkg/domain"
)

func TestMonitor_RunHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("all healthy scores full marks", func(t *testing.T) {
		server := serveXML(rssWithEntries(6, time.Now().Add(-time.Hour)))
		defer server.Close()

		m := NewMonitor(New(), []domain.Source{
			{Name: "A", URL: server.URL},
			{Name: "B", URL: server.URL},
		}, MonitorConfig{})

		check := m.RunHealthCheck(ctx)

		assert.InEpsilon(t, 100.0, check.Report.OverallScore, 0.001)
		assert.Equal(t, 2, check.Report.TotalSources)
		assert.Zero(t, check.Report.Problematic)
		assert.Zero(t, check.Report.Slow)
		assert.Zero(t, check.Report.Stale)
		assert.False(t, check.Report.CheckedAt.IsZero())
		assert.Len(t, check.Results, 2)
		assert.Len(t, check.History["A"], 1)
		assert.Len(t, check.History["B"], 1)
	})

	t.Run("error source drags the score down", func(t *testing.T) {
		healthy := serveXML(rssWithEntries(6, time.Now().Add(-time.Hour)))
		defer healthy.Close()
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer broken.Close()

		m := NewMonitor(New(), []domain.Source{
			{Name: "Good", URL: healthy.URL},
			{Name: "Bad", URL: broken.URL},
		}, MonitorConfig{})

		check := m.RunHealthCheck(ctx)

		// one success of two is 50, minus the empty-source penalty 15/2
		assert.InEpsilon(t, 42.5, check.Report.OverallScore, 0.001)
		assert.Equal(t, 1, check.Report.Problematic)
		require.Len(t, check.Report.ProblemSources, 1)
		assert.Equal(t, "Bad", check.Report.ProblemSources[0].Name)
		assert.Equal(t, domain.ValidationError, check.Report.ProblemSources[0].Status)
	})

	t.Run("empty feed counts as problematic despite warning status", func(t *testing.T) {
		healthy := serveXML(rssWithEntries(6, time.Now().Add(-time.Hour)))
		defer healthy.Close()
		hollow := serveXML(rssWithEntries(0, time.Now()))
		defer hollow.Close()

		m := NewMonitor(New(), []domain.Source{
			{Name: "Good", URL: healthy.URL},
			{Name: "Hollow", URL: hollow.URL},
		}, MonitorConfig{})

		check := m.RunHealthCheck(ctx)

		// (1 + 0.5)/2*100 minus the empty-source penalty 15/2
		assert.InEpsilon(t, 67.5, check.Report.OverallScore, 0.001)
		assert.Equal(t, 1, check.Report.Problematic)
		require.Len(t, check.Report.ProblemSources, 1)
		assert.Equal(t, "Hollow", check.Report.ProblemSources[0].Name)
	})

	t.Run("score floors at zero", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer broken.Close()

		m := NewMonitor(New(), []domain.Source{
			{Name: "A", URL: broken.URL},
			{Name: "B", URL: broken.URL},
		}, MonitorConfig{})

		check := m.RunHealthCheck(ctx)
		assert.Zero(t, check.Report.OverallScore)
		assert.Equal(t, 2, check.Report.Problematic)
	})

	t.Run("no sources scores zero", func(t *testing.T) {
		m := NewMonitor(New(), nil, MonitorConfig{})
		check := m.RunHealthCheck(ctx)
		assert.Zero(t, check.Report.OverallScore)
		assert.Zero(t, check.Report.TotalSources)
	})

	t.Run("slow source detected and penalized", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(120 * time.Millisecond)
			w.Write([]byte(rssWithEntries(6, time.Now().Add(-time.Hour))))
		}))
		defer slow.Close()

		m := NewMonitor(New(), []domain.Source{{Name: "Sluggish", URL: slow.URL}},
			MonitorConfig{SlowThreshold: 0.05})

		check := m.RunHealthCheck(ctx)

		assert.Equal(t, 1, check.Report.Slow)
		require.Len(t, check.Report.SlowSources, 1)
		assert.Equal(t, "Sluggish", check.Report.SlowSources[0].Name)
		assert.Greater(t, check.Report.SlowSources[0].ResponseTime, 0.05)
		assert.InEpsilon(t, 90.0, check.Report.OverallScore, 0.001) // 100 minus the slow penalty
	})

	t.Run("stale source detected", func(t *testing.T) {
		dusty := serveXML(rssWithEntries(6, time.Now().Add(-45*24*time.Hour)))
		defer dusty.Close()

		m := NewMonitor(New(), []domain.Source{{Name: "Dusty", URL: dusty.URL}}, MonitorConfig{})

		check := m.RunHealthCheck(ctx)

		assert.Equal(t, 1, check.Report.Stale)
		require.Len(t, check.Report.StaleSources, 1)
		assert.Equal(t, "Dusty", check.Report.StaleSources[0].Name)
		assert.Equal(t, 45, check.Report.StaleSources[0].DaysOld)
		// stale feeds validate as warnings, half credit
		assert.InEpsilon(t, 50.0, check.Report.OverallScore, 0.001)
	})

	t.Run("detail lists capped", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		var sources []domain.Source
		for i := 0; i < 7; i++ {
			sources = append(sources, domain.Source{Name: fmt.Sprintf("s%d", i), URL: broken.URL})
		}

		m := NewMonitor(New(), sources, MonitorConfig{})
		check := m.RunHealthCheck(ctx)

		assert.Equal(t, 7, check.Report.Problematic)
		assert.Len(t, check.Report.ProblemSources, 5)
	})
}

func TestMonitor_History(t *testing.T) {
	ctx := context.Background()

	server := serveXML(rssWithEntries(6, time.Now().Add(-time.Hour)))
	defer server.Close()

	m := NewMonitor(New(), []domain.Source{{Name: "A", URL: server.URL}}, MonitorConfig{})

	base := time.Now()
	current := base
	m.nowFn = func() time.Time { return current }

	m.RunHealthCheck(ctx)
	require.Len(t, m.History("A"), 1)

	current = base.Add(2 * time.Hour)
	m.RunHealthCheck(ctx)
	require.Len(t, m.History("A"), 2, "both snapshots inside the window")

	current = base.Add(25 * time.Hour)
	m.RunHealthCheck(ctx)

	snapshots := m.History("A")
	require.Len(t, snapshots, 2, "first snapshot aged out of the 24h window")
	assert.Equal(t, base.Add(2*time.Hour), snapshots[0].Timestamp)
	assert.Equal(t, base.Add(25*time.Hour), snapshots[1].Timestamp)

	assert.Empty(t, m.History("unknown"))
}

func TestMonitor_LastCheck(t *testing.T) {
	ctx := context.Background()

	server := serveXML(rssWithEntries(6, time.Now().Add(-time.Hour)))
	defer server.Close()

	m := NewMonitor(New(), []domain.Source{{Name: "A", URL: server.URL}}, MonitorConfig{})

	_, ok := m.LastCheck()
	assert.False(t, ok, "no check has run yet")

	ran := m.RunHealthCheck(ctx)

	got, ok := m.LastCheck()
	require.True(t, ok)
	assert.Equal(t, ran.Report.OverallScore, got.Report.OverallScore)
	assert.Equal(t, ran.Report.CheckedAt, got.Report.CheckedAt)
	assert.Len(t, got.Results, 1)
}
