package collaborator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"listings-backend/internal/domain/asset"
	"listings-backend/internal/domain/payment"
)

func TestCustodyClient_PostsToEachEndpoint(t *testing.T) {
	var paths []string
	var last map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&last)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCustodyClient(srv.URL)
	ctx := context.Background()
	if err := c.Freeze(ctx, "mint-1", "auth-1"); err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	if err := c.Thaw(ctx, "mint-1", "auth-1"); err != nil {
		t.Fatalf("Thaw: %v", err)
	}
	if err := c.Transfer(ctx, "mint-1", "a", "b", "auth-1"); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	want := []string{"/freeze", "/thaw", "/transfer"}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path[%d] = %s, want %s", i, paths[i], p)
		}
	}
	if last["from"] != "a" || last["to"] != "b" || last["mint"] != "mint-1" {
		t.Errorf("transfer body = %v", last)
	}
}

func TestCustodyClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewCustodyClient(srv.URL).Freeze(context.Background(), "m", "a"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestRailClient_TransferOK(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transfers" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewRailClient(srv.URL).Transfer(context.Background(), "a", "b", 500); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got["from"] != "a" || got["to"] != "b" || got["amount"] != float64(500) {
		t.Errorf("body = %v", got)
	}
}

func TestRailClient_InsufficientFunds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	err := NewRailClient(srv.URL).Transfer(context.Background(), "a", "b", 500)
	if !errors.Is(err, payment.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestOracleClient_DecodesMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/mint-1/metadata" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(asset.Metadata{
			Mint:               "mint-1",
			Creators:           []asset.Creator{{Address: "c1", Share: 100}},
			RoyaltyBasisPoints: 500,
		})
	}))
	defer srv.Close()

	md, err := NewOracleClient(srv.URL).Metadata(context.Background(), "mint-1")
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if md.Mint != "mint-1" || len(md.Creators) != 1 || md.RoyaltyBasisPoints != 500 {
		t.Errorf("metadata = %+v", md)
	}
}

func TestOracleClient_MissingMintRejected(t *testing.T) {
	// A record without a mint cannot satisfy the cross-check the
	// usecases perform; never paper over it with the requested mint.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(asset.Metadata{
			Creators: []asset.Creator{{Address: "c1", Share: 100}},
		})
	}))
	defer srv.Close()

	if _, err := NewOracleClient(srv.URL).Metadata(context.Background(), "mint-1"); err == nil {
		t.Fatal("expected error on metadata without a mint")
	}
}

func TestOracleClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewOracleClient(srv.URL).Metadata(context.Background(), "nope"); err == nil {
		t.Fatal("expected error on 404")
	}
}
