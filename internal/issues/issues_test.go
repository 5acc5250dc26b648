package issues

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub is a minimal in-memory stand-in for the milestone and issue
// endpoints the client touches.
type fakeGitHub struct {
	t          *testing.T
	milestones []Milestone
	issues     []Issue
}

func (f *fakeGitHub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /repos/acme/desknote/milestones", func(w http.ResponseWriter, r *http.Request) {
		f.writeJSON(w, f.milestones)
	})
	mux.HandleFunc("POST /repos/acme/desknote/milestones", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		m := Milestone{Number: len(f.milestones) + 1, Title: body.Title, State: "open"}
		f.milestones = append(f.milestones, m)
		w.WriteHeader(http.StatusCreated)
		f.writeJSON(w, m)
	})

	mux.HandleFunc("GET /repos/acme/desknote/issues", func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		out := make([]Issue, 0)
		for _, issue := range f.issues {
			if state == "all" || issue.State == state {
				out = append(out, issue)
			}
		}
		f.writeJSON(w, out)
	})
	mux.HandleFunc("POST /repos/acme/desknote/issues", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		issue := Issue{Number: 100 + len(f.issues), Title: body.Title, State: "open"}
		f.issues = append(f.issues, issue)
		w.WriteHeader(http.StatusCreated)
		f.writeJSON(w, issue)
	})
	mux.HandleFunc("PATCH /repos/acme/desknote/issues/{number}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			State string `json:"state"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		for i := range f.issues {
			if fmt.Sprint(f.issues[i].Number) == r.PathValue("number") {
				f.issues[i].State = body.State
				f.writeJSON(w, f.issues[i])
				return
			}
		}
		http.NotFound(w, r)
	})

	return mux
}

func (f *fakeGitHub) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(f.t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, fake *fakeGitHub) *Client {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "acme/desknote", "test-token", nil)
}

func TestBootstrapCreatesMilestoneAndIssues(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	def := &Definition{
		Milestone: "v0.2",
		Issues: []IssueSpec{
			{Title: "Add archive view", Body: "show archived todos"},
			{Title: "Polish settings card"},
		},
	}

	results, err := client.Bootstrap(t.Context(), def)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Skipped)
	assert.False(t, results[1].Skipped)

	require.Len(t, fake.milestones, 1)
	assert.Equal(t, "v0.2", fake.milestones[0].Title)
	require.Len(t, fake.issues, 2)
}

func TestBootstrapSkipsExistingTitles(t *testing.T) {
	fake := &fakeGitHub{
		t:          t,
		milestones: []Milestone{{Number: 1, Title: "v0.2", State: "open"}},
		issues:     []Issue{{Number: 7, Title: "Add archive view", State: "open"}},
	}
	client := newTestClient(t, fake)

	def := &Definition{
		Milestone: "v0.2",
		Issues: []IssueSpec{
			{Title: "Add archive view"},
			{Title: "Polish settings card"},
		},
	}

	results, err := client.Bootstrap(t.Context(), def)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Skipped)
	assert.Equal(t, 7, results[0].Number)
	assert.False(t, results[1].Skipped)

	// Only the missing issue was created.
	require.Len(t, fake.issues, 2)
}

func TestCloseMilestone(t *testing.T) {
	fake := &fakeGitHub{
		t:          t,
		milestones: []Milestone{{Number: 1, Title: "v0.2", State: "open"}},
		issues: []Issue{
			{Number: 7, Title: "Add archive view", State: "open"},
			{Number: 8, Title: "Polish settings card", State: "closed"},
		},
	}
	client := newTestClient(t, fake)

	closed, err := client.CloseMilestone(t.Context(), "v0.2")
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, 7, closed[0].Number)

	for _, issue := range fake.issues {
		assert.Equal(t, "closed", issue.State)
	}
}

func TestCloseMilestoneUnknownTitle(t *testing.T) {
	client := newTestClient(t, &fakeGitHub{t: t})

	_, err := client.CloseMilestone(t.Context(), "v9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.yaml")
	doc := `milestone: v0.2
issues:
  - title: Add archive view
    body: show archived todos
    labels: [enhancement]
  - title: Polish settings card
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	def, err := LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "v0.2", def.Milestone)
	require.Len(t, def.Issues, 2)
	assert.Equal(t, "Add archive view", def.Issues[0].Title)
	assert.Equal(t, []string{"enhancement"}, def.Issues[0].Labels)
}

func TestLoadDefinitionRequiresMilestone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.yaml")
	require.NoError(t, os.WriteFile(path, []byte("issues: []\n"), 0o644))

	_, err := LoadDefinition(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "milestone is required")
}

func TestClientRetriesOnRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "[]")
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "acme/desknote", "test-token", nil)

	var milestones []Milestone
	err := client.get(t.Context(), "/repos/acme/desknote/milestones?state=all&per_page=100", &milestones)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Empty(t, milestones)
}
