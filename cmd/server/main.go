package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/unimarket/unimarket/market"
	"github.com/unimarket/unimarket/notify"
	"github.com/unimarket/unimarket/server"
	"github.com/unimarket/unimarket/server/resolver"
	"github.com/unimarket/unimarket/statestore"
	"github.com/unimarket/unimarket/storage"
	"github.com/unimarket/unimarket/store"
	"github.com/unimarket/unimarket/utils/dotenv"
	"github.com/unimarket/unimarket/utils/flag"
	. "github.com/unimarket/unimarket/utils/log"
)

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		Log.Fatalf("missing required environment variable %s", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	siteURL := envOr("SITE_URL", "http://localhost:3000")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.NewStore(ctx, mustEnv("MONGO_URI"), envOr("MONGO_DB", "unimarket"))
	if err != nil {
		Log.Fatalf("connect mongo: %v", err)
	}

	images, err := storage.NewS3ImageStore(envOr("S3_REGION", "ap-northeast-1"), mustEnv("S3_BUCKET"))
	if err != nil {
		Log.Fatalf("init image store: %v", err)
	}

	states := statestore.NewRedisStateStore(envOr("REDIS_ADDR", "localhost:6379"), os.Getenv("REDIS_PASSWORD"))
	if err := states.Ping(ctx); err != nil {
		Log.Fatalf("connect redis: %v", err)
	}

	notifier := notify.NewClient(
		mustEnv("LINE_NOTIFY_CLIENT_ID"),
		mustEnv("LINE_NOTIFY_CLIENT_SECRET"),
		mustEnv("LINE_NOTIFY_REDIRECT_URL"),
	)
	login := server.NewLineLogin(
		mustEnv("LINE_CHANNEL_ID"),
		mustEnv("LINE_CHANNEL_SECRET"),
		mustEnv("LINE_LOGIN_REDIRECT_URL"),
	)

	identity := market.NewIdentity(
		st, images, states, notifier, login, notifier,
		[]byte(mustEnv("ACCESS_TOKEN_SECRET")),
		[]byte(mustEnv("SIGN_UP_TOKEN_SECRET")),
	)

	root := &resolver.RootResolver{
		Identity: identity,
		Trades:   market.NewTradeEngine(st, notifier, siteURL),
		Catalog:  market.NewCatalog(st, images, notifier, siteURL),
		Profiles: market.NewProfiles(st, images),
	}

	router := gin.Default()
	router.Use(cors.Default())

	router.POST("/graphql", server.GraphqlHandler(root))

	callbacks := &server.Callbacks{
		Identity: identity,
		Images:   images,
		SiteURL:  siteURL,
	}
	callbacks.Register(router)

	Log.Info("api server starts up")
	if err := router.Run(":8080"); err != nil && err != http.ErrServerClosed {
		Log.Fatalf("server: %v", err)
	}
}
