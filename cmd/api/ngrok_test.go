package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTunnel(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "prefers https",
			body: `{"tunnels":[{"public_url":"http://a.ngrok.io","proto":"http"},{"public_url":"https://a.ngrok.io","proto":"https"}]}`,
			want: "https://a.ngrok.io",
		},
		{
			name: "any tunnel",
			body: `{"tunnels":[{"public_url":"tcp://0.tcp.ngrok.io:1234","proto":"tcp"}]}`,
			want: "tcp://0.tcp.ngrok.io:1234",
		},
		{
			name:    "no tunnels",
			body:    `{"tunnels":[]}`,
			wantErr: true,
		},
		{
			name:    "bad json",
			body:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/tunnels", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			got, err := fetchTunnel(context.Background(), ts.Client(), ts.URL+"/api/tunnels")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
