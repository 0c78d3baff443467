package feed

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KasumiMercury/dispatch-watch/internal/testutil/feedstub"
)

func TestClientFetch(t *testing.T) {
	storage, url := feedstub.NewServer(t)
	storage.Seed([]feedstub.Event{
		{
			PrimeStreet:  "QUEEN ST W, TT",
			CrossStreets: "SPADINA AVE",
			DispatchTime: "2024-02-28T09:58:12",
			EventNum:     "F24012345",
			EventType:    "Medical",
			AlarmLevel:   "0",
			UnitsDisp:    "P314, R314",
		},
		{
			PrimeStreet:  "YONGE ST, NY",
			DispatchTime: "2024-02-28T10:01:40",
			EventNum:     "F24012346",
			EventType:    "Vehicle Fire",
			AlarmLevel:   "1",
			UnitsDisp:    "P101",
		},
	})

	client := NewClient(url, "P314", time.UTC)

	records, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "F24012345" {
		t.Fatalf("expected [F24012345], got %+v", records)
	}
	if client.Requested() != 1 {
		t.Errorf("expected 1 request, got %d", client.Requested())
	}
}

func TestClientFetch_UnexpectedStatus(t *testing.T) {
	storage, url := feedstub.NewServer(t)
	storage.FailNext(1, http.StatusBadGateway)

	client := NewClient(url, "P314", time.UTC)

	_, err := client.Fetch(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}

	records, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on recovery: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if client.Requested() != 2 || storage.Requests() != 2 {
		t.Errorf("expected 2 requests, got client=%d stub=%d", client.Requested(), storage.Requests())
	}
}

func TestClientFetch_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/feed.xml", "P314", time.UTC)

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for unreachable feed")
	}
	if client.Requested() != 1 {
		t.Errorf("failed requests should still be counted, got %d", client.Requested())
	}
}
