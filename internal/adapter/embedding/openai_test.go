package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitamind/internal/domain"
)

func TestOpenAIEmbedder_Embed(t *testing.T) {
	var got embeddingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		// Out of order on purpose: placement follows the reported index.
		_, _ = w.Write([]byte(`{"data":[
			{"index":1,"embedding":[0,1]},
			{"index":0,"embedding":[1,0]}
		]}`))
	}))
	defer srv.Close()

	e, err := NewOpenAIEmbedder("sk-test", "", srv.URL+"/", time.Second)
	require.NoError(t, err)

	vectors, err := e.Embed(context.Background(), []string{"query", "passage"})
	require.NoError(t, err)

	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vectors)
	assert.Equal(t, []string{"query", "passage"}, got.Input)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, DefaultModel, e.ModelName())
}

func TestOpenAIEmbedder_NoCredential(t *testing.T) {
	_, err := NewOpenAIEmbedder("", "m", "", 0)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestOpenAIEmbedder_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`},
		{"unauthorized", http.StatusUnauthorized, `nope`},
		{"malformed json", http.StatusOK, `{"data":`},
		{"api error envelope", http.StatusOK, `{"error":{"message":"quota","type":"insufficient_quota"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			e, err := NewOpenAIEmbedder("sk-test", "m", srv.URL, time.Second)
			require.NoError(t, err)

			_, err = e.Embed(context.Background(), []string{"q", "p"})
			assert.ErrorIs(t, err, domain.ErrEmbeddingService)
		})
	}
}

func TestOpenAIEmbedder_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	e, err := NewOpenAIEmbedder("sk-test", "m", url, time.Second)
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), []string{"q"})
	assert.ErrorIs(t, err, domain.ErrEmbeddingService)
}

func TestDecodeResponse_MissingAndOutOfRangeIndices(t *testing.T) {
	vectors, err := decodeResponse(200, []byte(`{"data":[{"index":0,"embedding":[1]},{"index":7,"embedding":[2]}]}`), 3)
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{1}, vectors[0])
	assert.Nil(t, vectors[1])
	assert.Nil(t, vectors[2])
}
