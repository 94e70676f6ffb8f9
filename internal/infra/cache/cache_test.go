package cache_test

import (
	"testing"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[*domain.UserInfo](5 * time.Minute)

	c.Set("user-1", &domain.UserInfo{ID: "user-1", Name: "Ada"})
	val, ok := c.Get("user-1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val.Name != "Ada" {
		t.Errorf("expected 'Ada', got '%s'", val.Name)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[*domain.UserInfo](5 * time.Minute)

	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("key1", "value1")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}
