// Package testutil holds test doubles shared across packages.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// MockWikiServer is a test server that mocks the MediaWiki api.php endpoint.
type MockWikiServer struct {
	*httptest.Server

	mu         sync.Mutex
	categories map[string][]string
	pages      map[string]string
	failPages  map[string]int
	Requests   []string
}

// NewMockWikiServer creates a new mock wiki API server.
func NewMockWikiServer(t *testing.T) *MockWikiServer {
	t.Helper()
	m := &MockWikiServer{
		categories: map[string][]string{},
		pages:      map[string]string{},
		failPages:  map[string]int{},
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	return m
}

// MockCategory registers the page titles listed for Category:<name>.
func (m *MockWikiServer) MockCategory(name string, titles ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories["Category:"+name] = titles
}

// MockPage registers the parsed HTML returned for a page.
func (m *MockWikiServer) MockPage(title, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[title] = html
}

// MockPageStatus makes the parse action for title fail with status.
func (m *MockWikiServer) MockPageStatus(title string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPages[title] = status
}

// RequestCount returns how many API requests were served.
func (m *MockWikiServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func (m *MockWikiServer) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api.php" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, r.URL.RawQuery)

	var response interface{}
	switch q.Get("action") {
	case "query":
		titles, ok := m.categories[q.Get("cmtitle")]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		members := make([]map[string]interface{}, 0, len(titles))
		for _, t := range titles {
			members = append(members, map[string]interface{}{"ns": 0, "title": t})
		}
		response = map[string]interface{}{"query": map[string]interface{}{"categorymembers": members}}
	case "parse":
		title := q.Get("page")
		if status, ok := m.failPages[title]; ok {
			w.WriteHeader(status)
			return
		}
		html, ok := m.pages[title]
		if !ok {
			response = map[string]interface{}{"error": map[string]string{"code": "missingtitle", "info": "The page you specified doesn't exist."}}
			break
		}
		response = map[string]interface{}{"parse": map[string]interface{}{"title": title, "text": map[string]string{"*": html}}}
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response) //nolint:errcheck // test mock response
}
