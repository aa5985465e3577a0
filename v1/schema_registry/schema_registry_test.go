package schema_registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{}) {}

func framed(id int, payload string) []byte {
	return append(EncodeSchemaID(id), payload...)
}

// newRegistryServer serves schema 1 as JSON and schema 2 as Avro. Schema 5
// fails with a server error; every other ID is unknown.
func newRegistryServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		user, pass, _ := r.BasicAuth()
		if user != "sink" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/schemas/ids/1":
			_, _ = w.Write([]byte(`{"schema": "{\"type\":\"object\"}", "schemaType": "JSON"}`))
		case "/schemas/ids/2":
			_, _ = w.Write([]byte(`{"schema": "{\"type\":\"record\"}"}`))
		case "/schemas/ids/5":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error_code": 40403, "message": "Schema not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(Config{URL: url + "/", Username: "sink", Password: "secret"})
	require.NoError(t, err)
	return client
}

func TestWireFormat(t *testing.T) {
	data := framed(258, `{"id": 1}`)
	assert.Equal(t, []byte{0, 0, 0, 1, 2}, data[:5])
	assert.True(t, IsFramed(data))

	id, payload, err := DecodeSchemaID(data)
	require.NoError(t, err)
	assert.Equal(t, 258, id)
	assert.Equal(t, `{"id": 1}`, string(payload))

	assert.False(t, IsFramed([]byte(`{"id": 1}`)))
	assert.False(t, IsFramed([]byte{0, 0}))

	_, _, err = DecodeSchemaID([]byte{0, 1})
	assert.ErrorIs(t, err, ErrInvalidFrame)
	_, _, err = DecodeSchemaID([]byte(`{"a":1}`))
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNoURL)
}

func TestClientGetSchemaByID(t *testing.T) {
	srv, requests := newRegistryServer(t)
	client := newTestClient(t, srv.URL)

	meta, err := client.GetSchemaByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, meta.ID)
	assert.Equal(t, TypeJSON, meta.Type)

	_, err = client.GetSchemaByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(requests))

	meta, err = client.GetSchemaByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, TypeAvro, meta.Type)

	_, err = client.GetSchemaByID(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaNotFound)
	assert.False(t, IsLookupError(err))
	assert.Contains(t, err.Error(), "40403")

	_, err = client.GetSchemaByID(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, IsLookupError(err))
	assert.Contains(t, err.Error(), "503")
}

func TestDecoder(t *testing.T) {
	srv, _ := newRegistryServer(t)
	decoder := NewDecoder(newTestClient(t, srv.URL))
	ctx := context.Background()

	t.Run("Unframed", func(t *testing.T) {
		out, err := decoder.Decode(ctx, []byte(`{"id": 1}`))
		require.NoError(t, err)
		assert.Equal(t, `{"id": 1}`, string(out))
	})

	t.Run("JSONSchema", func(t *testing.T) {
		out, err := decoder.Decode(ctx, framed(1, `{"id": 1}`))
		require.NoError(t, err)
		assert.Equal(t, `{"id": 1}`, string(out))
	})

	t.Run("AvroSchema", func(t *testing.T) {
		_, err := decoder.Decode(ctx, framed(2, "\x02\x04"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedSchemaType)
		assert.ErrorIs(t, err, value.ErrMalformedInput)
		assert.False(t, IsLookupError(err))
	})

	t.Run("UnknownSchema", func(t *testing.T) {
		_, err := decoder.Decode(ctx, framed(9, `{}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSchemaNotFound)
		assert.True(t, value.IsMalformedInputError(err))
		assert.False(t, IsLookupError(err))
	})

	t.Run("RegistryUnavailable", func(t *testing.T) {
		_, err := decoder.Decode(ctx, framed(5, `{}`))
		require.Error(t, err)
		assert.True(t, IsLookupError(err))
		assert.False(t, value.IsMalformedInputError(err))
	})
}

func TestDecoderWithoutRegistry(t *testing.T) {
	out, err := NewDecoder(nil).Decode(context.Background(), framed(2, `{"id": 1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"id": 1}`, string(out))
}

func TestFXModule(t *testing.T) {
	srv, _ := newRegistryServer(t)

	for name, cfg := range map[string]Config{
		"WithRegistry":    {Enabled: true, URL: srv.URL, Username: "sink", Password: "secret"},
		"WithoutRegistry": {Enabled: true},
	} {
		t.Run(name, func(t *testing.T) {
			var decoder *Decoder
			app := fxtest.New(t,
				fx.Supply(cfg),
				fx.Provide(func() Logger { return nopLogger{} }),
				FXModule,
				fx.Populate(&decoder),
			)
			app.RequireStart()
			defer app.RequireStop()

			out, err := decoder.Decode(context.Background(), framed(1, `{}`))
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(out))
		})
	}
}
