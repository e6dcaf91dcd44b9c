package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v; want v, true, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete hit")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	_ = os.WriteFile(path, []byte("{not json"), 0644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Width: 450, Height: 600, Rows: 15, Cols: 14, Gap: 1, Seed: 42}

	tests := []struct {
		name string
		mod  func(*LayoutKeyOpts)
	}{
		{"width", func(o *LayoutKeyOpts) { o.Width++ }},
		{"rows", func(o *LayoutKeyOpts) { o.Rows++ }},
		{"gap", func(o *LayoutKeyOpts) { o.Gap++ }},
		{"merge", func(o *LayoutKeyOpts) { o.NoMerge = true }},
		{"weights", func(o *LayoutKeyOpts) { o.Weights[1] = 5 }},
		{"seed", func(o *LayoutKeyOpts) { o.Seed++ }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base
			tt.mod(&o)
			if k.LayoutKey(o) == k.LayoutKey(base) {
				t.Errorf("changing %s did not change the layout key", tt.name)
			}
		})
	}

	if got := k.LayoutKey(base); !strings.HasPrefix(got, "layout:") || got != k.LayoutKey(base) {
		t.Errorf("LayoutKey() = %q, want stable layout: key", got)
	}

	a := ArtifactKeyOpts{Format: "svg", Seed: 1, Palette: []string{"#000000"}}
	b := a
	b.Format = "png"
	if k.ArtifactKey("h", a) == k.ArtifactKey("h", b) {
		t.Error("different formats produced the same artifact key")
	}
	if k.ArtifactKey("h1", a) == k.ArtifactKey("h2", a) {
		t.Error("different layouts produced the same artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "tenant:")
	inner := NewDefaultKeyer()
	opts := LayoutKeyOpts{Rows: 1}
	if got, want := scoped.LayoutKey(opts), "tenant:"+inner.LayoutKey(opts); got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(got, "tenant:artifact:") {
		t.Errorf("ArtifactKey() = %q, want tenant:artifact: prefix", got)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, nil, 1, false},
		{"non-retryable", 5, errFatal, 1, true},
		{"recovers", 1, Retryable(ErrBackend), 2, false},
		{"exhausted", 5, Retryable(ErrBackend), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, 3, time.Second, func() error {
		return Retryable(ErrBackend)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) != nil")
	}
	if err := classify(redis.Nil); IsRetryable(err) || !errors.Is(err, redis.Nil) {
		t.Errorf("classify(redis.Nil) = %v", err)
	}
	if err := classify(context.Canceled); IsRetryable(err) {
		t.Error("context errors should not be retried")
	}
	err := classify(errors.New("connection refused"))
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("classify(transport) = %v, want retryable ErrBackend", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost"); err == nil {
		t.Error("expected error for non-redis url")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheFromClient(client, "test:")
	defer c.Close()

	_, hit, err := c.Get(context.Background(), "k")
	if hit || !errors.Is(err, ErrBackend) {
		t.Errorf("Get() hit=%v err=%v, want ErrBackend", hit, err)
	}
}
