package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	shortToken = "turnstile-token"
	longToken  = "03AGdBq24PBCbwiDRaS_MJ7Z5xP0aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func newVerifier(recaptchaURL, turnstileURL string) *HTTPVerifier {
	v := NewHTTPVerifier("rc-secret", "ts-secret")
	if recaptchaURL != "" {
		v.RecaptchaURL = recaptchaURL
	}
	if turnstileURL != "" {
		v.TurnstileURL = turnstileURL
	}
	return v
}

func TestVerify_TurnstileByTokenLength(t *testing.T) {
	var gotContentType string
	var gotSecret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotSecret = body["secret"]
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	v := newVerifier("", srv.URL)
	require.True(t, v.Verify(context.Background(), shortToken))
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "ts-secret", gotSecret)
}

func TestVerify_RecaptchaByTokenLength(t *testing.T) {
	var gotContentType, gotResponse string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotResponse = r.PostFormValue("response")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	v := newVerifier(srv.URL, "")
	require.True(t, v.Verify(context.Background(), longToken))
	require.True(t, strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded"))
	require.Equal(t, longToken, gotResponse)
}

func TestVerify_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := newVerifier(srv.URL, srv.URL)
	require.False(t, v.Verify(context.Background(), shortToken))
	require.False(t, v.Verify(context.Background(), longToken))
}

func TestVerify_FailClosed(t *testing.T) {
	// server error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	v := newVerifier(srv.URL, srv.URL)
	require.False(t, v.Verify(context.Background(), shortToken))
	srv.Close()

	// unreachable endpoint
	v = newVerifier("http://127.0.0.1:1", "http://127.0.0.1:1")
	require.False(t, v.Verify(context.Background(), shortToken))

	// empty token never reaches the network
	require.False(t, v.Verify(context.Background(), ""))
}
