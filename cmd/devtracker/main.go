package main

import (
	netHttp "net/http"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"devtracker/internal/adapter/github"
	"devtracker/internal/api/http"
	"devtracker/internal/api/http/limiter"
	"devtracker/internal/app"
	"devtracker/internal/commands"
	"devtracker/internal/database"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}

	httpClient := &netHttp.Client{
		Timeout: conf.GithubTimeout,
	}
	limitedHTTPClient := limiter.NewHTTPDoer(
		httpClient,
		conf.GithubAPIRateLimit,
	)

	db, err := database.Open(conf.DBPath)
	if err != nil {
		l.Fatalf("couldn't open database: %v", err)
	}
	defer db.Close()

	githubKVStore, err := database.NewBoltKVStore(db, conf.DBBucketName)
	if err != nil {
		l.Fatalf("couldn't create github kv store: %v", err)
	}
	commandsKVStore, err := database.NewBoltKVStore(db, conf.CommandsBucketName)
	if err != nil {
		l.Fatalf("couldn't create commands kv store: %v", err)
	}

	githubClient := github.NewClient(
		limitedHTTPClient,
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
		conf.CommitMaxPages,
	)
	commitCache, err := github.NewCommitCache(
		githubClient,
		githubKVStore,
		conf.CommitCacheSize,
		l.WithField("component", "commitCache"),
	)
	if err != nil {
		l.Fatalf("couldn't create commit cache: %v", err)
	}
	catalogCache := github.NewCatalogCache(githubKVStore)

	service, err := app.NewService(
		commitCache,
		catalogCache,
		commitCache,
		conf.GithubUser,
		conf.GithubOrg,
		conf.EnrichConcurrency,
		l.WithField("component", "service"),
	)
	if err != nil {
		l.Fatalf("couldn't create service: %v", err)
	}

	commandStore := commands.NewStore(commandsKVStore)

	mux := http.NewMux(service, commandStore, conf.ServiceResponseTimeout, l.WithField("component", "mux"))
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	server.Run()
}
