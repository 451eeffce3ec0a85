package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerateHooks{}
	g.OnGenerateStart(ctx, "hongKong", 5, 6)
	g.OnGenerateComplete(ctx, "hongKong", 30, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "theme")
	c.OnCacheMiss(ctx, "theme")
	c.OnCacheSet(ctx, "theme", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/themes")
	h.OnResponse(ctx, "GET", "/themes", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGenerate := &testGenerateHooks{}
	SetGenerateHooks(customGenerate)
	if Generate() != customGenerate {
		t.Error("SetGenerateHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Reset() should restore NoopGenerateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testGenerateHooks{}
	SetGenerateHooks(custom)
	SetGenerateHooks(nil)

	if Generate() != custom {
		t.Error("SetGenerateHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	h := NewLogHooks(logger)
	h.Install()

	ctx := context.Background()
	Generate().OnGenerateStart(ctx, "hongKong", 5, 6)
	Generate().OnGenerateComplete(ctx, "hongKong", 0, time.Millisecond, errors.New("boom"))
	Cache().OnCacheMiss(ctx, "theme")
	HTTP().OnResponse(ctx, "GET", "/themes", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"generate start", "generate failed", "boom", "cache miss", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

// Test implementations
type testGenerateHooks struct{ NoopGenerateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
