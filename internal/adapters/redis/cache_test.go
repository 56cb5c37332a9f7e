package redisad

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(mr.Addr(), "", 0), mr
}

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var missed payload
	ok, err := c.Get(ctx, "hotel:hotel-1", &missed)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("hit on empty cache")
	}

	want := payload{Name: "グランドホテル東京", Price: 25000}
	if err := c.Set(ctx, "hotel:hotel-1", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	ok, err = c.Get(ctx, "hotel:hotel-1", &got)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCache_KeysAreNamespaced(t *testing.T) {
	c, mr := newTestCache(t)
	if err := c.Set(context.Background(), "hotel:hotel-1", payload{}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("staybook:hotel:hotel-1") {
		t.Fatalf("stored keys: %v", mr.Keys())
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "hotel:hotel-2", payload{Name: "x"}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var got payload
	ok, err := c.Get(ctx, "hotel:hotel-2", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected expired key to miss")
	}
}

func TestCache_Del(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "hotel:hotel-3", payload{Name: "y"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "hotel:hotel-3"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var got payload
	if ok, _ := c.Get(ctx, "hotel:hotel-3", &got); ok {
		t.Fatal("key survived delete")
	}
}
