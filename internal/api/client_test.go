package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_EndpointsSendTokensAndDecode(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotDraft ProductDraft
	var gotTxn TransactionRequest
	var gotCreds Credentials
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/products":
			_, _ = io.WriteString(w, `[{"_id":"m1","name":"Drum","category":"music","price":"19.99","featured":true},{"id":"c1","name":"Scarf","category":"clothing","price":5}]`)
		case "/api/products/create":
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotDraft)
			_, _ = io.WriteString(w, `{"product":{"_id":"new-1","name":"Kora","category":"music","price":"120"}}`)
		case "/api/auth/login":
			_ = json.NewDecoder(r.Body).Decode(&gotCreds)
			_, _ = io.WriteString(w, `"tok-123"`)
		case "/api/auth/signup":
			_, _ = io.WriteString(w, `{"token":"tok-456"}`)
		case "/api/transactions":
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotTxn)
			_, _ = io.WriteString(w, `{"id":"tx-1","status":"paid"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.FetchProducts(ctx)
	if err != nil {
		t.Fatalf("FetchProducts returned error: %v", err)
	}
	if len(products) != 2 || products[0].ID != "m1" || products[1].ID != "c1" {
		t.Fatalf("FetchProducts = %#v, want ids m1,c1 in order", products)
	}
	if !products[0].Price.Equal(decimal.RequireFromString("19.99")) || !products[0].Featured {
		t.Fatalf("FetchProducts[0] = %#v, want price 19.99 featured", products[0])
	}

	created, err := c.CreateProduct(ctx, "admin-tok", ProductDraft{Name: "Kora", Category: CategoryMusic})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if created.ID != "new-1" || created.Name != "Kora" {
		t.Fatalf("CreateProduct = %#v, want id new-1", created)
	}
	if gotAuth != "Bearer admin-tok" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotDraft.Name != "Kora" {
		t.Fatalf("draft payload = %#v, want name Kora", gotDraft)
	}

	token, err := c.Login(ctx, Credentials{Username: "admin", Password: "pw"})
	if err != nil || token != "tok-123" {
		t.Fatalf("Login = %q, %v, want tok-123", token, err)
	}
	if gotCreds.Username != "admin" {
		t.Fatalf("login payload = %#v, want username admin", gotCreds)
	}

	token, err = c.Signup(ctx, SignupData{Username: "new"})
	if err != nil || token != "tok-456" {
		t.Fatalf("Signup = %q, %v, want tok-456", token, err)
	}

	receipt, err := c.CreateTransaction(ctx, "admin-tok", TransactionRequest{
		Items: []TransactionLine{{ProductID: "m1", Quantity: 2, UnitPrice: decimal.NewFromInt(3)}},
		Total: decimal.NewFromInt(6),
	})
	if err != nil || receipt.ID != "tx-1" {
		t.Fatalf("CreateTransaction = %#v, %v, want tx-1", receipt, err)
	}
	if len(gotTxn.Items) != 1 || gotTxn.Items[0].Quantity != 2 {
		t.Fatalf("transaction payload = %#v, want one line qty 2", gotTxn)
	}

	if !strings.HasPrefix(gotUserAgent, "vogue/") {
		t.Fatalf("User-Agent = %q, want vogue/*", gotUserAgent)
	}
}

func TestClient_StatusErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/signup":
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"message":"username already taken"}`)
		case "/api/auth/login":
			http.Error(w, "nope", http.StatusUnauthorized)
		case "/api/products":
			_, _ = io.WriteString(w, "{not-json")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Signup(context.Background(), SignupData{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusConflict {
		t.Fatalf("Signup error = %v, want 409 StatusError", err)
	}
	if ServerMessage(err) != "username already taken" {
		t.Fatalf("ServerMessage = %q, want server text", ServerMessage(err))
	}

	_, err = c.Login(context.Background(), Credentials{})
	if err == nil || !strings.Contains(err.Error(), "returned status 401") {
		t.Fatalf("Login error = %v, want status 401", err)
	}
	if ServerMessage(err) != "" {
		t.Fatalf("ServerMessage = %q, want empty for plain-text body", ServerMessage(err))
	}

	_, err = c.FetchProducts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchProducts error = %v, want decode response error", err)
	}
}

func TestClient_CreateProductRequiresID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"product":{"name":"Nameless"}}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.CreateProduct(context.Background(), "", ProductDraft{}); err == nil {
		t.Fatalf("CreateProduct returned nil error, want missing id error")
	}
}

func TestClient_CreateProductCompletesIDOnlyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"product":{"_id":"new-2"}}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	draft := ProductDraft{Name: "Kora", Category: CategoryMusic, Tags: []string{"strings"}}
	created, err := c.CreateProduct(context.Background(), "", draft)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if created.ID != "new-2" || created.Name != "Kora" || created.Category != CategoryMusic {
		t.Fatalf("CreateProduct = %#v, want draft fields with id new-2", created)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "strings" {
		t.Fatalf("Tags = %#v, want [strings]", created.Tags)
	}
}

func TestDecodeToken(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json_string", `"abc"`, "abc"},
		{"object", `{"token":"abc"}`, "abc"},
		{"object_without_token", `{"ok":true}`, ""},
		{"plain_text", "  eyJ.abc.def \n", "eyJ.abc.def"},
		{"empty", "", ""},
		{"empty_string", `""`, ""},
		{"null", "null", ""},
		{"array", `["abc"]`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decodeToken(json.RawMessage(tc.in)); got != tc.want {
				t.Fatalf("decodeToken(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeCatalog_WrappedAndEmpty(t *testing.T) {
	products, err := decodeCatalog(json.RawMessage(`{"products":[{"id":"a"}]}`))
	if err != nil || len(products) != 1 || products[0].ID != "a" {
		t.Fatalf("decodeCatalog wrapped = %#v, %v, want one product", products, err)
	}
	products, err = decodeCatalog(json.RawMessage(" null "))
	if err != nil || products != nil {
		t.Fatalf("decodeCatalog null = %#v, %v, want nil", products, err)
	}
}
