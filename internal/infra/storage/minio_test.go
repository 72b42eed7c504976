package storage

import "testing"

func TestObjectURL(t *testing.T) {
	got := ObjectURL("", "minio:9000", "reports", "acme/2026/01/02/r1.json")
	if got != "http://minio:9000/reports/acme/2026/01/02/r1.json" {
		t.Fatalf("got %q", got)
	}
	if got := ObjectURL("https", "s3.local", "b", "k.json"); got != "https://s3.local/b/k.json" {
		t.Fatalf("got %q", got)
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"a/b.json": "application/json",
		"a/b.html": "text/html",
		"a/b":      "application/octet-stream",
	}
	for key, want := range cases {
		if got := contentTypeFor(key); got != want {
			t.Fatalf("contentTypeFor(%q) = %q, want %q", key, got, want)
		}
	}
}
