package update

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"launchmc/checksum"
)

func TestApplyUpToDate(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	hash, err := checksum.MD5(exe)
	require.NoError(t, err)

	var binaryFetched bool
	mux := http.NewServeMux()
	mux.HandleFunc("/launchmc-hash.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(hash + "\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		binaryFetched = true
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	require.NoError(t, Apply(nil, server.URL+"/"))
	require.False(t, binaryFetched)
}

func TestApplyNoPublishedHash(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	require.NoError(t, Apply(nil, server.URL))
}

func TestApplyBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := Apply(nil, server.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "responded 503")
}
