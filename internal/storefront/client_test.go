package storefront

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_ListBooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("where[featured][equals]"))
		assert.Equal(t, "0", r.URL.Query().Get("depth"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[{"id":1,"title":"It","slug":"it","price":449,"stock":6,"featured":true,"author":2,"genres":[3]}],"totalDocs":1,"limit":10}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", zap.NewNop())
	query := url.Values{}
	query.Set("where[featured][equals]", "true")
	query.Set("depth", "0")

	list, err := client.ListBooks(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list.Docs, 1)
	assert.Equal(t, int64(449), list.Docs[0].Price)
	assert.JSONEq(t, `2`, string(list.Docs[0].Author))
	assert.Equal(t, 1, list.TotalDocs)
}

func TestClient_GetBookNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"book not found: missing"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, zap.NewNop()).GetBook(context.Background(), "missing")

	var apiErr *APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "book not found: missing", apiErr.Message)
}

func TestClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "ORD-1", got["orderNumber"])
		assert.NotContains(t, got, "customerPhone")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"6f1c","orderNumber":"ORD-1","status":"pending","totalAmount":598,"items":[{"book":1,"quantity":2,"price":299}],"createdAt":"2024-06-01T10:00:00Z"}`))
	}))
	defer server.Close()

	order, err := NewClient(server.URL, zap.NewNop()).CreateOrder(context.Background(), OrderSubmission{
		OrderNumber:   "ORD-1",
		CustomerName:  "Kari",
		CustomerEmail: "kari@example.no",
		Items:         []OrderLine{{Book: 1, Quantity: 2, Price: 299}},
		TotalAmount:   598,
		Status:        "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, []OrderLine{{Book: 1, Quantity: 2, Price: 299}}, order.Items)
}

func TestClient_CreateOrderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		fields  map[string]string
	}{
		{"conflict", http.StatusConflict, `{"message":"order number already exists, please try again"}`, "order number already exists, please try again", nil},
		{"validation", http.StatusBadRequest, `{"message":"validation failed","errors":{"customerEmail":"must be a valid email address"}}`, "validation failed", map[string]string{"customerEmail": "must be a valid email address"}},
		{"plain text", http.StatusBadGateway, "upstream down\n", "upstream down", nil},
		{"ok is not created", http.StatusOK, `{}`, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, zap.NewNop()).CreateOrder(context.Background(), OrderSubmission{OrderNumber: "ORD-1"})

			var apiErr *APIError
			require.True(t, stderrors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.fields, apiErr.Fields)
		})
	}
}

func TestClient_NoBaseURL(t *testing.T) {
	_, err := NewClient("", nil).GetOrder(context.Background(), "ORD-1")
	assert.Error(t, err)
}

func TestAPIError(t *testing.T) {
	assert.Equal(t, "bookstore API returned 500", (&APIError{StatusCode: 500}).Error())
	assert.Equal(t, "bookstore API returned 409: taken", (&APIError{StatusCode: 409, Message: "taken"}).Error())
}
