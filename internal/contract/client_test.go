package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	addr, err := ParseAddress(testAddress)
	if err != nil {
		t.Fatalf("ParseAddress() error = %v", err)
	}
	return NewClient(server.URL, addr, "test-token"), server
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{testAddress, false},
		{"0x1234567890ABCDEF1234567890ABCDEF12345678", false},
		{"", true},
		{"0x123", true},
		{"not-an-address", true},
		{"0x1234567890abcdef1234567890abcdef123456zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseAddress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestClient_TotalSupply(t *testing.T) {
	tests := []struct {
		name string
		body string
		want uint64
	}{
		{"numeric", "42", 42},
		{"decimal string", `"42"`, 42},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotAuth string
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				fmt.Fprint(w, tt.body)
			})

			supply, err := client.TotalSupply(context.Background())
			if err != nil {
				t.Fatalf("TotalSupply() error = %v", err)
			}
			if supply != tt.want {
				t.Errorf("TotalSupply() = %d, want %d", supply, tt.want)
			}

			wantPath := fmt.Sprintf("/erc-721/%s/total-supply", client.Contract().Hex())
			if gotPath != wantPath {
				t.Errorf("request path = %q, want %q", gotPath, wantPath)
			}
			if gotAuth != "Bearer test-token" {
				t.Errorf("Authorization = %q, want bearer token", gotAuth)
			}
		})
	}
}

func TestClient_TotalSupply_Malformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"not a number"`)
	})

	if _, err := client.TotalSupply(context.Background()); err == nil {
		t.Error("TotalSupply() error = nil, want parse error")
	}
}

func TestClient_Mint(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		fmt.Fprint(w, `{"transactionHash":"0xdeadbeef"}`)
	})

	recipient, _ := ParseAddress("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	txHash, err := client.Mint(context.Background(), recipient)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if txHash != "0xdeadbeef" {
		t.Errorf("Mint() = %q, want %q", txHash, "0xdeadbeef")
	}
	if gotBody["to"] != recipient.Hex() {
		t.Errorf(`body "to" = %q, want %q`, gotBody["to"], recipient.Hex())
	}
}

func TestClient_AdminVerbs(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*Client, context.Context) (string, error)
		wantSuffix string
	}{
		{"collect reserves", (*Client).CollectReserves, "/collect-reserves"},
		{"start public sale", (*Client).StartPublicSale, "/start-public-sale"},
		{"pause", (*Client).Pause, "/pause"},
		{"unpause", (*Client).Unpause, "/unpause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				fmt.Fprint(w, `{"transactionHash":"0x1"}`)
			})

			txHash, err := tt.call(client, context.Background())
			if err != nil {
				t.Fatalf("call error = %v", err)
			}
			if txHash != "0x1" {
				t.Errorf("txHash = %q, want %q", txHash, "0x1")
			}
			wantPath := fmt.Sprintf("/erc-721/%s%s", client.Contract().Hex(), tt.wantSuffix)
			if gotPath != wantPath {
				t.Errorf("request path = %q, want %q", gotPath, wantPath)
			}
		})
	}
}

func TestClient_SetBaseURI(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		fmt.Fprint(w, `{"transactionHash":"0x2"}`)
	})

	if _, err := client.SetBaseURI(context.Background(), "https://meta.example.com/punkz/"); err != nil {
		t.Fatalf("SetBaseURI() error = %v", err)
	}
	if gotBody["baseURI"] != "https://meta.example.com/punkz/" {
		t.Errorf(`body "baseURI" = %q, want the new URI`, gotBody["baseURI"])
	}
}

func TestClient_ErrorIncludesMethodPathStatusBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "node unavailable\n")
	})

	_, err := client.Mint(context.Background(), client.Contract())
	if err == nil {
		t.Fatal("Mint() error = nil, want HTTP error")
	}

	msg := err.Error()
	wantPath := fmt.Sprintf("/erc-721/%s/mint", client.Contract().Hex())
	for _, fragment := range []string{"contract service:", "POST", wantPath, "HTTP 503", "node unavailable"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("error %q missing %q", msg, fragment)
		}
	}
	if strings.HasSuffix(msg, "\n") {
		t.Errorf("error %q carries untrimmed body", msg)
	}
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, "1")
	}))
	t.Cleanup(server.Close)

	addr, _ := ParseAddress(testAddress)
	client := NewClient(server.URL, addr, "")
	if _, err := client.TotalSupply(context.Background()); err != nil {
		t.Fatalf("TotalSupply() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}
