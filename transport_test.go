package mess

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminTransportSetsToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{
		Transport: AdminTransport("s3cret", nil),
	}

	resp, err := client.Get(srv.URL + "/admin/update")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got != "Bearer s3cret" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer s3cret")
	}
}

func TestAdminTransportLeavesRequestUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{
		Transport: AdminTransport("s3cret", http.DefaultTransport),
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if h := req.Header.Get("Authorization"); h != "" {
		t.Errorf("caller's request was modified: Authorization = %q", h)
	}
}
