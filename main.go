package main

import (
	"context"
	"fmt"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"

	"github.com/paichaigo43/project1/modules/api"
	"github.com/paichaigo43/project1/modules/cache"
	"github.com/paichaigo43/project1/modules/calculator"
	"github.com/paichaigo43/project1/modules/mcpserver"
	"github.com/paichaigo43/project1/modules/stats"
)

func main() {
	cfg := LoadConfig()

	log.Println("=== Calculator ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Result cache: %t", cfg.CacheEnabled)
	if cfg.CacheEnabled {
		if cfg.CacheBackend == CacheBackendKV {
			log.Printf("JetStream KV: bucket %s in %s (TTL: %s)", cache.KVBucket, cfg.JetStreamDir, cfg.CacheTTL)
		} else {
			log.Printf("Redis: %s (prefix: %s, TTL: %s)", cfg.RedisAddr, cfg.CachePrefix, cfg.CacheTTL)
		}
	}
	log.Printf("MCP server: %t", cfg.MCPEnabled)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(cfg.JetStreamDir),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	statsModule := stats.NewModule()
	calculatorModule := calculator.NewModule(logger.WithModule("calculator"))
	apiModule := api.NewModule(cfg.HTTPPort, logger.WithModule("api"))

	// Order: independent modules first, then modules with dependencies.
	if cfg.CacheEnabled {
		cacheModule, kvPlugin, err := newResultCache(cfg)
		if err != nil {
			log.Fatalf("Failed to create result cache: %v", err)
		}
		if kvPlugin != nil {
			// The framework calls SetPlugin(cache.KVPluginAlias, kvPlugin)
			// on the KV cache module.
			if err := app.RegisterPlugin(kvPlugin, cache.KVPluginAlias); err != nil {
				log.Fatalf("Failed to register kv plugin: %v", err)
			}
		}
		app.Register(cacheModule)

		// The cache backend connects in Init or Start; until then its
		// lookups fail open in the calculator.
		calculatorModule.SetCache(cacheModule)
		apiModule.SetCacheControl(cacheModule)
	}
	app.Register(statsModule)      // Event consumer (counts evaluations)
	app.Register(calculatorModule) // Core domain (emits CalculationEvaluated)
	app.Register(apiModule)        // Driving adapter (depends on calculator, stats)
	if cfg.MCPEnabled {
		app.Register(mcpserver.NewModule(cfg.MCPPort, logger.WithModule("mcp")))
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// resultCache is a cache module usable by both the calculator and the API.
type resultCache interface {
	mono.Module
	calculator.ResultCache
	api.CacheControl
}

// newResultCache builds the configured cache backend. The KV backend also
// returns the plugin that must be registered for it.
func newResultCache(cfg Config) (resultCache, *kvjetstream.PluginModule, error) {
	if cfg.CacheBackend == CacheBackendKV {
		kvPlugin, err := kvjetstream.New(kvjetstream.Config{
			Buckets: []kvjetstream.BucketConfig{cache.KVBucketConfig(cfg.CacheTTL)},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create kv plugin: %w", err)
		}
		return cache.NewKVModule(cfg.CacheTTL), kvPlugin, nil
	}

	return cache.NewModule(
		cache.WithRedisAddr(cfg.RedisAddr),
		cache.WithRedisPassword(cfg.RedisPassword),
		cache.WithRedisDB(cfg.RedisDB),
		cache.WithPrefix(cfg.CachePrefix),
		cache.WithTTL(cfg.CacheTTL),
	), nil, nil
}

func printStartupInfo(cfg Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Calculator form: http://localhost:%d/", cfg.HTTPPort)
	log.Println("REST API Endpoints:")
	log.Println("  POST   /api/v1/calculate        - Evaluate {operation, operand1, operand2}")
	log.Println("  GET    /api/v1/operations       - List supported operations")
	log.Println("  GET    /api/v1/stats            - Evaluation statistics")
	if cfg.CacheEnabled {
		log.Println("  GET    /api/v1/cache/stats      - Cache statistics")
		log.Println("  POST   /api/v1/cache/stats/reset - Reset cache statistics")
		log.Println("  DELETE /api/v1/cache            - Invalidate cached results (?operation=)")
	}
	log.Println("  GET    /health                  - Health check")
	if cfg.MCPEnabled {
		log.Println("")
		log.Printf("MCP (SSE): http://localhost:%d/sse", cfg.MCPPort)
		log.Printf("  Tools: %s, %s", mcpserver.ToolCalculate, mcpserver.ToolOperations)
	}
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
