package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/coregx/thegrep"
)

func newTestServer() *Server {
	cfg := thegrep.DefaultConfig()
	cfg.Mode = thegrep.Search
	return New(zerolog.Nop(), cfg)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "status").String(); got != "ok" {
		t.Errorf("status field = %q", got)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		body string
		mode string
		want []bool
	}{
		{
			name: "default search",
			body: `{"pattern":"ab*c","inputs":["xxabbbcyy","ac","abbbb",""]}`,
			mode: "search",
			want: []bool{true, true, false, false},
		},
		{
			name: "full",
			body: `{"pattern":"ab*c","inputs":["xxabbbcyy","ac","abbbb"],"mode":"full"}`,
			mode: "full",
			want: []bool{false, true, false},
		},
		{
			name: "nullable",
			body: `{"pattern":"(a|bc)*","inputs":["","bcbc","bcx"],"mode":"full"}`,
			mode: "full",
			want: []bool{true, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, "/v1/match", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			body := rec.Body.String()
			if got := gjson.Get(body, "mode").String(); got != tt.mode {
				t.Errorf("mode = %q, want %q", got, tt.mode)
			}
			results := gjson.Get(body, "results").Array()
			if len(results) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.want))
			}
			inputs := gjson.Get(tt.body, "inputs").Array()
			for i, r := range results {
				if r.Get("input").String() != inputs[i].String() {
					t.Errorf("result %d is for %q, want %q", i, r.Get("input"), inputs[i])
				}
				if r.Get("matched").Bool() != tt.want[i] {
					t.Errorf("result %d matched = %v, want %v", i, r.Get("matched").Bool(), tt.want[i])
				}
			}
		})
	}
}

func TestMatch_ManyInputs(t *testing.T) {
	inputs := make([]string, 500)
	for i := range inputs {
		if i%3 == 0 {
			inputs[i] = fmt.Sprintf(`"id-%d-foo"`, i)
		} else {
			inputs[i] = fmt.Sprintf(`"id-%d"`, i)
		}
	}
	body := `{"pattern":"foo|bar","inputs":[` + strings.Join(inputs, ",") + `]}`

	rec := do(t, newTestServer(), http.MethodPost, "/v1/match", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for i, r := range gjson.Get(rec.Body.String(), "results").Array() {
		if got, want := r.Get("matched").Bool(), i%3 == 0; got != want {
			t.Errorf("input %d matched = %v, want %v", i, got, want)
		}
	}
}

func TestMatch_ParseError(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/match", `{"pattern":"a|)","inputs":["a"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if got := gjson.Get(body, "error").String(); got != "unexpected token: RightParen" {
		t.Errorf("error = %q", got)
	}
	if gjson.Get(body, "line").Int() != 1 || gjson.Get(body, "column").Int() != 3 {
		t.Errorf("position = %s:%s", gjson.Get(body, "line"), gjson.Get(body, "column"))
	}
}

func TestMatch_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"mode", `{"pattern":"a","inputs":[],"mode":"fuzzy"}`},
		{"json", `{"pattern":`},
		{"empty pattern", `{"pattern":"","inputs":["a"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, "/v1/match", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestNFA(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/nfa", `{"pattern":"a|."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()

	states := gjson.Get(body, "states").Array()
	if len(states) != 5 {
		t.Fatalf("got %d states, want 5", len(states))
	}
	if gjson.Get(body, "start").Int() != 0 || gjson.Get(body, "end").Int() != 4 {
		t.Errorf("start/end = %s/%s", gjson.Get(body, "start"), gjson.Get(body, "end"))
	}
	if got := states[0].Get("kind").String(); got != "Start" {
		t.Errorf("state 0 kind = %q", got)
	}
	if got := states[4].Get("kind").String(); got != "End" {
		t.Errorf("last state kind = %q", got)
	}
	if !states[4].Get("edges").IsArray() || len(states[4].Get("edges").Array()) != 0 {
		t.Errorf("End edges = %s, want []", states[4].Get("edges"))
	}

	var labels []string
	for _, st := range states {
		if l := st.Get("label").String(); l != "" {
			labels = append(labels, l)
		}
	}
	if strings.Join(labels, ",") != "a,ANY" {
		t.Errorf("labels = %v", labels)
	}
	if dot := gjson.Get(body, "dot").String(); !strings.HasPrefix(dot, "digraph nfa") {
		t.Errorf("dot = %q", dot)
	}
}

func TestNFA_ParseError(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/nfa", `{"pattern":"(ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "error").String(); got != "unexpected end of input" {
		t.Errorf("error = %q", got)
	}
}

func TestRun_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server did not come up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
