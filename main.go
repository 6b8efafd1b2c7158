package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dronemarket/catalog/pkg/catalog"
	"github.com/dronemarket/catalog/pkg/common"
	"github.com/dronemarket/catalog/pkg/messaging"
	"github.com/dronemarket/catalog/pkg/server"
	"github.com/dronemarket/catalog/pkg/session"
	"github.com/dronemarket/catalog/pkg/storage"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints")

var feedUrl = os.Getenv("FEED_URL")
var attributesUrl = os.Getenv("ATTRIBUTES_URL")
var categoriesUrl = os.Getenv("CATEGORIES_URL")
var facetsUrl = os.Getenv("FACETS_URL")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")
var rabbitUrl = os.Getenv("RABBIT_URL")
var rabbitVHost = os.Getenv("RABBIT_HOST")
var topicPrefix = os.Getenv("TOPIC_PREFIX")
var nodeName = os.Getenv("NODE_NAME")
var dataPath = os.Getenv("DATA_PATH")
var listenAddress = ":8080"
var debugAddress = ":8081"

func init() {
	flag.Parse()
	if topicPrefix == "" {
		topicPrefix = "catalog"
	}
	if dataPath == "" {
		dataPath = "data"
	}
}

func loadCatalog(disk *storage.DiskStorage, cfg catalog.Config) *catalog.Loaded {
	if feedUrl == "" {
		// Offline mode, serve the last snapshot.
		snapshot, err := disk.LoadSnapshot()
		if err != nil {
			log.Fatalf("No feed url and no usable snapshot: %v", err)
		}
		log.Printf("loaded snapshot with %d products", len(snapshot.Products))
		return catalog.FromSnapshot(snapshot)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	loaded, err := catalog.Load(ctx, http.DefaultClient, cfg)
	if err != nil {
		// A failed load never serves a partial or stale catalog.
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("loaded %d products from feed", len(loaded.Dataset.Products))
	return loaded
}

func main() {
	disk := storage.NewDiskStorage(dataPath)
	cfg := catalog.Config{
		FeedUrl:       feedUrl,
		AttributesUrl: attributesUrl,
		CategoriesUrl: categoriesUrl,
		FacetsUrl:     facetsUrl,
	}
	loaded := loadCatalog(disk, cfg)

	sessions := session.NewStore(time.Hour * 2)
	srv := server.NewWebServer(loaded, sessions)
	srv.LoaderConfig = cfg
	srv.Client = http.DefaultClient

	if redisUrl != "" {
		srv.Cache = server.NewCache(redisUrl, redisPassword, 0)
		log.Printf("using redis response cache at %s", redisUrl)
	}

	if rabbitUrl != "" {
		conn, err := amqp.DialConfig(rabbitUrl, amqp.Config{
			Vhost:      rabbitVHost,
			Properties: amqp.NewConnectionProperties(),
		})
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			log.Fatalf("Failed to open a channel: %v", err)
		}
		err = messaging.ListenToTopic(ch, topicPrefix, messaging.FeedUpdatedTopic, func(d amqp.Delivery) error {
			log.Printf("feed update notification received")
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
			defer cancel()
			if err := srv.Reload(ctx); err != nil {
				log.Printf("reload after feed update failed: %v", err)
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to listen for feed updates: %v", err)
		}
		srv.OnReload = func(l *catalog.Loaded) {
			err := messaging.SendChange(conn, topicPrefix, messaging.CatalogReloadedTopic, messaging.CatalogReloaded{
				Products:   len(l.Dataset.Products),
				ReloadedAt: time.Now().Unix(),
				Node:       nodeName,
			})
			if err != nil {
				log.Printf("failed to broadcast reload: %v", err)
			}
		}
		log.Printf("listening for feed updates")
	}

	if *enableProfiling {
		go func() {
			debugMux := http.NewServeMux()
			debugMux.HandleFunc("/debug/pprof/", pprof.Index)
			debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
			log.Printf("profiling enabled on %s", debugAddress)
			if err := http.ListenAndServe(debugAddress, debugMux); err != nil {
				log.Printf("debug server error: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/", srv.CreateHandler())
	mux.Handle("/metrics", promhttp.Handler())

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      30 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: mux,
	}, timeouts)

	saveSnapshot := func(ctx context.Context) error {
		return disk.SaveSnapshot(srv.Current().Snapshot())
	}
	closeSessions := func(ctx context.Context) error {
		sessions.Close()
		return nil
	}
	common.RunServerWithShutdown(httpServer, "catalog server", timeouts.Shutdown, timeouts.Hook, saveSnapshot, closeSessions)
}
