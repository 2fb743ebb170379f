package flagapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/alpha/FRA":
			w.Write([]byte(`[{"flags":{"png":"https://flagcdn.com/w320/fr.png","svg":"https://flagcdn.com/fr.svg"}}]`))
		case "/alpha/XXX":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		got, err := client.FlagURL(ctx, "FRA")
		require.NoError(t, err)
		assert.Equal(t, "https://flagcdn.com/w320/fr.png", got)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		_, err := client.FlagURL(ctx, "XXX")
		assert.Error(t, err)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		_, err := client.FlagURL(ctx, "ZZZ")
		assert.Error(t, err)
	})
}
