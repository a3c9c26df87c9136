package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutPresigned(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")

	t.Run("success", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod, gotQuery string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotQuery = r.URL.RawQuery
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := PutPresigned(context.Background(), ts.URL+"/blog-media/posts/a?X-Amz-Signature=abc", png, "")
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "image/png", gotCT)
		assert.Equal(t, "X-Amz-Signature=abc", gotQuery)
		assert.Equal(t, png, gotBody)
	})

	t.Run("explicit content type", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer ts.Close()

		require.NoError(t, PutPresigned(context.Background(), ts.URL, png, "image/webp"))
		assert.Equal(t, "image/webp", gotCT)
	})

	t.Run("rejected", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		err := PutPresigned(context.Background(), ts.URL, png, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload failed: 403")
		assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
	})

	t.Run("bad url", func(t *testing.T) {
		assert.Error(t, PutPresigned(context.Background(), "://nope", png, ""))
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, PutPresigned(ctx, "http://127.0.0.1:1/x", png, ""))
	})
}
