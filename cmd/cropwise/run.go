package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/pkg/cache"
	"github.com/cropwise/cropwise/pkg/chat"
	"github.com/cropwise/cropwise/pkg/knowledge"
	"github.com/cropwise/cropwise/pkg/llms"
	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/recommend"
	"github.com/cropwise/cropwise/pkg/search"
	"github.com/cropwise/cropwise/pkg/server"
	"github.com/cropwise/cropwise/pkg/tasks"
	"github.com/cropwise/cropwise/pkg/vectorstore"
)

// run is the entrypoint for the cropwise server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring cropwise: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting cropwise server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := server.SetupTracing(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	appState, err := NewAppState(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := tasks.RunTaskRouter(ctx, appState); err != nil {
		log.Fatalf("failed to start task router: %v", err)
	}

	watcher := startKnowledgeWatcher(ctx, appState)

	setupSignalHandler(appState, cancel, func() {
		if watcher != nil {
			if err := watcher.Close(); err != nil {
				log.Errorf("Error closing knowledge watcher: %v", err)
			}
		}
		if err := shutdownTracing(context.Background()); err != nil {
			log.Errorf("Error flushing traces: %v", err)
		}
	})

	srv := server.Create(appState)

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}

// NewAppState builds every component from the config: the language model
// (nil in demo mode), the embedder, the persisted document store, the
// recommendation cache and the services on top of them.
func NewAppState(ctx context.Context, cfg *config.Config) (*models.AppState, error) {
	llm, err := llms.NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	embedder, err := llms.NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := newDocumentStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recommendationCache, err := cache.NewCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	log.Infof("Using %s recommendation cache", cacheType(cfg))

	searcher := search.NewSearcher(store, embedder, cfg)

	return &models.AppState{
		LLM:           llm,
		Embedder:      embedder,
		DocumentStore: store,
		Cache:         recommendationCache,
		Searcher:      searcher,
		Recommender:   recommend.NewRecommender(llm, searcher, recommendationCache, cfg),
		ChatResponder: chat.NewResponder(llm, cfg),
		KnowledgeBase: knowledge.NewService(store, embedder),
		Config:        cfg,
	}, nil
}

func newDocumentStore(ctx context.Context, cfg *config.Config) (*vectorstore.Store, error) {
	objects, err := vectorstore.NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	store := vectorstore.NewStore(objects)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func seedKnowledgeBase(ctx context.Context, cfg *config.Config) (int, error) {
	embedder, err := llms.NewEmbedder(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := newDocumentStore(ctx, cfg)
	if err != nil {
		return 0, err
	}

	return knowledge.NewService(store, embedder).Seed(ctx)
}

func startKnowledgeWatcher(ctx context.Context, appState *models.AppState) *knowledge.Watcher {
	dir := appState.Config.Knowledge.WatchDir
	if dir == "" {
		log.Debug("knowledge watcher disabled")
		return nil
	}

	watcher, err := knowledge.NewWatcher(dir, appState.TaskPublisher)
	if err != nil {
		log.Errorf("failed to watch %s: %v", dir, err)
		return nil
	}

	go watcher.Run(ctx)

	return watcher
}

func cacheType(cfg *config.Config) string {
	if cfg.Cache.Type == "" {
		return "memory"
	}
	return cfg.Cache.Type
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := config.DumpYAML(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
}

// setupSignalHandler stops background work and closes the task router,
// publisher and cache on termination.
func setupSignalHandler(appState *models.AppState, cancel context.CancelFunc, onExit func()) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		cancel()
		if appState.TaskRouter != nil {
			if err := appState.TaskRouter.Close(); err != nil {
				log.Errorf("Error closing task router: %v", err)
			}
		}
		if appState.TaskPublisher != nil {
			if err := appState.TaskPublisher.Close(); err != nil {
				log.Errorf("Error closing task publisher: %v", err)
			}
		}
		if err := appState.Cache.Close(); err != nil {
			log.Errorf("Error closing cache: %v", err)
		}
		onExit()
		os.Exit(0)
	}()
}
