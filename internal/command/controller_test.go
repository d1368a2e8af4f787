// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hnvctl/hnvctl/internal/config"
)

const apiPrefix = "/networking/v1"

// fakeController is an in-memory network controller. Documents are stored by
// item path; a GET on a path ending in / lists the direct children.
type fakeController struct {
	mu      sync.Mutex
	items   map[string]map[string]any
	etag    int
	puts    []string
	deletes []string
	ifMatch []string
}

func newFakeController(t *testing.T) (*fakeController, *httptest.Server) {
	t.Helper()
	f := &fakeController{items: map[string]map[string]any{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

// seed stores doc at path, e.g. /logicalNetworks/ln1, as the controller
// would after a successful PUT.
func (f *fakeController) seed(t *testing.T, path, doc string) {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &m))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(apiPrefix+path, m)
}

func (f *fakeController) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[apiPrefix+path]
	return ok
}

func (f *fakeController) store(path string, m map[string]any) {
	f.etag++
	m["etag"] = fmt.Sprintf(`W/"%d"`, f.etag)
	m["resourceRef"] = strings.TrimPrefix(path, apiPrefix)
	m["instanceId"] = fmt.Sprintf("instance-%d", f.etag)
	props, _ := m["properties"].(map[string]any)
	if props == nil {
		props = map[string]any{}
		m["properties"] = props
	}
	props["provisioningState"] = "Succeeded"
	f.items[path] = m
}

func (f *fakeController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		if strings.HasSuffix(path, "/") {
			_ = json.NewEncoder(w).Encode(map[string]any{"value": f.list(path)})
			return
		}
		doc, ok := f.items[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"not found"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(doc)

	case http.MethodPut:
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.puts = append(f.puts, path)
		f.ifMatch = append(f.ifMatch, r.Header.Get("If-Match"))
		f.store(path, m)
		_ = json.NewEncoder(w).Encode(m)

	case http.MethodDelete:
		if _, ok := f.items[path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.deletes = append(f.deletes, path)
		delete(f.items, path)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// list returns the direct children of collection, ordered by path.
func (f *fakeController) list(collection string) []map[string]any {
	var paths []string
	for p := range f.items {
		rest, ok := strings.CutPrefix(p, collection)
		if ok && rest != "" && !strings.Contains(rest, "/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	out := make([]map[string]any, 0, len(paths))
	for _, p := range paths {
		out = append(out, f.items[p])
	}
	return out
}

// isolate points the config at a file holding cfg and clears every
// HNVCTL_ variable the commands read.
func isolate(t *testing.T, cfg string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hnvctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	t.Setenv("HNVCTL_CFG_FILE", path)
	_, err := config.Load()
	require.NoError(t, err)

	for _, env := range []string{
		"HNVCTL_URL", "HNVCTL_USERNAME", "HNVCTL_PASSWORD", "HNVCTL_INSECURE",
		"HNVCTL_CA_BUNDLE", "HNVCTL_CACHE", "HNVCTL_S3_ENDPOINT",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	origTerminal, origRead := stdinIsTerminal, readPassword
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		stdinIsTerminal, readPassword = origTerminal, origRead
	})

	return path
}

// fastConfig keeps retries and polling out of test run time.
const fastConfig = `hnv:
  retry_count: 0
  retry_interval: 1ms
`

// runApp runs hnvctl with args and returns what it printed.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runAppIn(t, nil, args...)
}

// runAppIn is runApp with stdin.
func runAppIn(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	full := append([]string{"hnvctl"}, args...)
	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	if stdin != nil {
		app.Reader = stdin
	}

	err = app.Run(context.Background(), full)
	return out.String(), err
}
