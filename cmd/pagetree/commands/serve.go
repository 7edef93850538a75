package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/pagetree/internal/project"
	"github.com/abdul-hamid-achik/pagetree/internal/watch"
	"github.com/abdul-hamid-achik/pagetree/pkg/generator"
	"github.com/abdul-hamid-achik/pagetree/pkg/routes"
	"github.com/abdul-hamid-achik/pagetree/pkg/scanner"
	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compiled route table over HTTP",
	Long: `Start a preview server exposing the current route table. The table is
recompiled whenever pages change.

Endpoints:
  GET /routes.json   Route manifest (json format)
  GET /routes        Flattened routes (?static=true for static only)
  GET /openapi.json  OpenAPI document for the pages
  GET /healthz       Liveness probe

Example:
  pagetree serve
  pagetree serve --port 8080 --open`,
	Run: runServe,
}

var (
	serveFlags   projectFlags
	servePort    string
	serveHost    string
	serveOpen    bool
	serveNoWatch bool
)

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides serve.port)")
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the route list in a browser")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not recompile when pages change")
}

// snapshot is one compiled state published to HTTP handlers.
type snapshot struct {
	snap     *project.Snapshot
	manifest []byte
	openapi  []byte
}

// serveState holds the latest snapshot; handlers never see a partial update.
type serveState struct {
	current atomic.Pointer[snapshot]
}

// refresh recompiles the project and publishes the result. On failure the
// previous snapshot stays in place.
func (s *serveState) refresh(p *project.Project) error {
	snap, err := p.Compile()
	if err != nil {
		return err
	}

	jsonGen, err := generator.NewGenerator(generator.Config{Format: "json"})
	if err != nil {
		return err
	}
	manifest, err := jsonGen.Render(snap.Routes)
	if err != nil {
		return err
	}

	apiGen, err := generator.NewGenerator(generator.Config{Format: "openapi"})
	if err != nil {
		return err
	}
	doc, err := apiGen.Render(snap.Routes)
	if err != nil {
		return err
	}

	s.current.Store(&snapshot{snap: snap, manifest: manifest, openapi: doc})
	return nil
}

func newServeRouter(state *serveState) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/routes.json", func(w http.ResponseWriter, _ *http.Request) {
		cur := state.current.Load()
		if cur == nil {
			http.Error(w, "routes not compiled yet", http.StatusServiceUnavailable)
			return
		}
		writeJSONBytes(w, cur.manifest)
	})

	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		cur := state.current.Load()
		if cur == nil {
			http.Error(w, "routes not compiled yet", http.StatusServiceUnavailable)
			return
		}
		writeJSONBytes(w, cur.openapi)
	})

	r.Get("/routes", func(w http.ResponseWriter, req *http.Request) {
		cur := state.current.Load()
		if cur == nil {
			http.Error(w, "routes not compiled yet", http.StatusServiceUnavailable)
			return
		}

		paths := cur.snap.Paths
		if static, _ := strconv.ParseBool(req.URL.Query().Get("static")); static {
			paths = routes.StaticPaths(cur.snap.Routes)
		}
		if paths == nil {
			paths = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		enc := newJSONEncoder(w)
		_ = enc.Encode(RoutesOutput{Routes: paths, Total: len(paths)})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/routes", http.StatusFound)
	})

	return r
}

func writeJSONBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func runServe(cmd *cobra.Command, args []string) {
	p, err := serveFlags.load(cmd)
	if err != nil {
		exitWithError(err)
	}

	port := p.Config.Serve.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	state := &serveState{}
	if err := state.refresh(p); err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serveNoWatch {
		if _, err := os.Stat(p.PagesDir()); err == nil {
			w, err := watch.New(p.PagesDir(), watch.DefaultDelay, scanner.IsPrivateFolder, func() {
				if err := state.refresh(p); err != nil {
					logger.Error("recompile failed", "err", err)
					return
				}
				logger.Info("routes recompiled", "routes", routes.Count(state.current.Load().snap.Routes))
			})
			if err != nil {
				exitWithError(fmt.Errorf("failed to create file watcher: %w", err))
			}
			w.SetLogger(logger)
			go func() { _ = w.Run(ctx) }()
		}
	}

	addr := serveHost + ":" + port
	url := fmt.Sprintf("http://%s/routes", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeRouter(state),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	total := routes.Count(state.current.Load().snap.Routes)
	if jsonOutput {
		printSuccess(ServeOutput{Status: "listening", URL: url, Routes: total})
	} else {
		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("\n  %s Route Preview\n\n", cyan("pagetree"))
		fmt.Printf("  %s %d routes compiled\n", green("✓"), total)
		fmt.Printf("\n  ➜ Local: %s\n\n", cyan(url))
	}

	if serveOpen {
		if err := browser.OpenURL(url); err != nil {
			logger.Warn("could not open browser", "err", err)
		}
	}

	select {
	case err := <-errCh:
		exitWithError(err)
	case <-ctx.Done():
	}

	if !jsonOutput {
		fmt.Println("\n  Shutting down...")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
