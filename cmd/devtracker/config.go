package main

import "time"

// Config is the container for app configuration
type Config struct {
	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:4000"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// ServiceResponseTimeout - timeout for service execution
	ServiceResponseTimeout time.Duration `default:"120s"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - auth token for rest github api
	GithubAPIToken string `required:"true"`

	// GithubUser - login of the tracked identity
	GithubUser string `required:"true"`

	// GithubOrg - organization whose repositories are merged into the catalog
	GithubOrg string `default:"college-of-mary-immaculate"`

	// GithubAPIRateLimit - max frequency for github rest api calls
	GithubAPIRateLimit float64 `default:"5"`

	// GithubTimeout - timeout for github api calls
	GithubTimeout time.Duration `default:"30s"`

	// EnrichConcurrency - max number of repositories enriched in flight
	EnrichConcurrency int `default:"8"`

	// CommitMaxPages - defensive cap on commit pagination per repository
	CommitMaxPages int `default:"100"`

	// CommitCacheSize - max number of commit documents kept in memory
	CommitCacheSize int `default:"512"`

	// DBPath - filepath for bolt db data
	DBPath string `default:"./devtracker.data"`

	// DBBucketName - bolt db bucket name for github data
	DBBucketName string `default:"github"`

	// CommandsBucketName - bolt db bucket name for stored commands
	CommandsBucketName string `default:"commands"`
}
