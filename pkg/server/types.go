package server

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/session"
)

// WebServer owns the loaded catalog, the session store and the optional
// response cache. Handlers are methods on it, there is no package level
// state beyond metrics.
type WebServer struct {
	mu     sync.RWMutex
	loaded *catalog.Loaded

	Sessions *session.Store
	Cache    *Cache

	// LoaderConfig and Client drive reloads. OnReload, when set, runs after
	// every successful dataset swap.
	LoaderConfig catalog.Config
	Client       *http.Client
	OnReload     func(*catalog.Loaded)
}

func NewWebServer(loaded *catalog.Loaded, sessions *session.Store) *WebServer {
	return &WebServer{
		loaded:   loaded,
		Sessions: sessions,
	}
}

// Current returns the active load. Requests keep working on the load they
// started with while a reload swaps the pointer.
func (ws *WebServer) Current() *catalog.Loaded {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.loaded
}

func (ws *WebServer) Swap(loaded *catalog.Loaded) {
	ws.mu.Lock()
	ws.loaded = loaded
	ws.mu.Unlock()
	if ws.OnReload != nil {
		ws.OnReload(loaded)
	}
}

// Reload refetches every configured resource and swaps the dataset in one
// step. A failed reload leaves the running catalog untouched.
func (ws *WebServer) Reload(ctx context.Context) error {
	loaded, err := catalog.Load(ctx, ws.Client, ws.LoaderConfig)
	if err != nil {
		return err
	}
	ws.Swap(loaded)
	log.Printf("catalog reloaded, %d products", len(loaded.Dataset.Products))
	return nil
}
