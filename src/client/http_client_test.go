package client_test

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-rsi-bot/src/client"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHttpClientSendsHeadersAndBody(t *testing.T) {
	assertion := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		w.Header().Set("X-Method", req.Method)
		_, _ = w.Write([]byte(req.Header.Get("API-Key") + "|" + string(body)))
	}))
	defer server.Close()

	httpClient := &client.HttpClient{Timeout: time.Second}

	body, err := httpClient.Post(server.URL+"/0/private/Balance", []byte("nonce=1"), map[string]string{"API-Key": "key"})
	assertion.Nil(err)
	assertion.Equal("key|nonce=1", string(body))

	body, err = httpClient.Get(server.URL+"/0/public/Ticker", map[string]string{})
	assertion.Nil(err)
	assertion.Equal("|", string(body))
}

func TestHttpClientClassifiesStatusCodes(t *testing.T) {
	assertion := assert.New(t)

	status := http.StatusBadGateway
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	httpClient := &client.HttpClient{Timeout: time.Second}

	_, err := httpClient.Get(server.URL, map[string]string{})
	assertion.ErrorIs(err, model.ErrNetwork)

	status = http.StatusForbidden
	_, err = httpClient.Get(server.URL, map[string]string{})
	assertion.NotNil(err)
	assertion.False(errors.Is(err, model.ErrNetwork))
}

func TestHttpClientTransportErrorIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := (&client.HttpClient{Timeout: time.Second}).Get(url, map[string]string{})

	assert.ErrorIs(t, err, model.ErrNetwork)
}
