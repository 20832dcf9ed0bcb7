package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garrettladley/terrahook/internal/signature"
	"github.com/garrettladley/terrahook/internal/xhttp"
)

func TestDeliverSignsBody(t *testing.T) {
	t.Parallel()

	const (
		secret = "s3cret"
		body   = `{"type":"activity"}`
	)

	var gotSig, gotUA, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("x-terra-signature")
		gotUA = r.Header.Get("User-Agent")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	status, resp, err := deliver(t.Context(), xhttp.NewHTTPClient("hookctl-test"), srv.URL, "x-terra-signature", secret, []byte(body))
	if err != nil {
		t.Fatalf("deliver() error = %v", err)
	}

	if status != http.StatusOK || string(resp) != `{"status":"ok"}` {
		t.Errorf("deliver() = %d %s", status, resp)
	}
	if err := signature.New(secret).Verify([]byte(gotBody), gotSig); err != nil {
		t.Errorf("server could not verify delivered signature: %v", err)
	}
	if gotUA != "hookctl-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestReadPayload(t *testing.T) {
	t.Parallel()

	got, err := readPayload(strings.NewReader(`{"a":1}`), "")
	if err != nil || string(got) != `{"a":1}` {
		t.Errorf("readPayload(stdin) = %q, %v", got, err)
	}

	if _, err := readPayload(nil, t.TempDir()+"/missing.json"); err == nil {
		t.Error("readPayload(missing file) error = nil")
	}
}
