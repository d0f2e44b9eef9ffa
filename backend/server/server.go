package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"shardvault/backend/state"
	"shardvault/shared/endpoints"
)

type HttpMethod int

const (
	GET HttpMethod = 1 << iota
	PUT
	POST
	DELETE
	OPTIONS
	ALL = GET | PUT | POST | DELETE
)

var MethodMap = map[HttpMethod]string{
	GET:     http.MethodGet,
	PUT:     http.MethodPut,
	POST:    http.MethodPost,
	DELETE:  http.MethodDelete,
	OPTIONS: http.MethodOptions,
}

// streamRouteDef builds the asset streaming route, which is mounted on both
// the command API and the dedicated loopback listener.
func streamRouteDef(appCtx *state.Context) RouteDef {
	return RouteDef{
		GET | OPTIONS,
		endpoints.StreamAsset,
		CORSMiddleware(ContextMiddleware(StreamAssetHandler, appCtx)),
	}
}

func buildRouter(appCtx *state.Context) *router {
	r := &router{
		routes: make(map[Route]http.HandlerFunc),
	}

	r.AddRoutes([]RouteDef{
		// Vault lifecycle
		{POST, endpoints.VaultUnlock, LimiterMiddleware(ContextMiddleware(UnlockHandler, appCtx))},
		{POST, endpoints.VaultLock, ContextMiddleware(LockHandler, appCtx)},
		{GET, endpoints.VaultStatus, ContextMiddleware(VaultStatusHandler, appCtx)},
		{GET, endpoints.StreamPort, ContextMiddleware(StreamPortHandler, appCtx)},

		// Shards
		{GET | POST, endpoints.Shards, ContextMiddleware(ShardsHandler, appCtx)},
		{PUT | DELETE, endpoints.Shard, ContextMiddleware(ShardHandler, appCtx)},

		// Assets
		{GET | POST, endpoints.Assets, ContextMiddleware(AssetsHandler, appCtx)},
		{DELETE, endpoints.Asset, ContextMiddleware(AssetHandler, appCtx)},

		// The streaming route is also mounted on the command API so
		// clients that already know the configured address can skip
		// the port lookup
		streamRouteDef(appCtx),

		{GET, endpoints.Up, UpHandler},
	})

	return r
}

// Handler exposes the full command API route table as a single handler.
func Handler(appCtx *state.Context) http.Handler {
	return buildRouter(appCtx)
}

// Run maps URL paths to handlers for the command API, binds the loopback
// streaming listener on an ephemeral port, and serves both until the process
// is interrupted.
func Run(addr string, appCtx *state.Context) {
	r := buildRouter(appCtx)

	// Streaming always binds an ephemeral loopback port regardless of the
	// configured API address; clients discover it via the port endpoint
	streamListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("Unable to bind streaming listener: %v\n", err)
	}

	streamPort := streamListener.Addr().(*net.TCPAddr).Port
	appCtx.SetStreamPort(streamPort)

	streamRouter := &router{
		routes: make(map[Route]http.HandlerFunc),
	}
	streamRouter.AddRoutes([]RouteDef{streamRouteDef(appCtx)})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Asset streaming on http://127.0.0.1:%d\n", streamPort)
		if err := http.Serve(streamListener, streamRouter); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("asset streaming returned err: %v", err)
		}
	}()

	go func() {
		log.Printf("Running on http://%s\n", addr)
		if err := http.ListenAndServe(addr, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve returned err: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	// Lock the vault so the store connection closes cleanly
	appCtx.Lock()
}
