package model

import "time"

const (
	DriverAWS   = "aws"
	DriverMinio = "minio"
)

// EndpointConfig describes one side of a transfer.
type EndpointConfig struct {
	Name           string
	Driver         string
	EndpointURL    string
	AccessKey      string
	SecretKey      string
	Region         string
	BucketName     string
	ForcePathStyle bool
}

type BatchConfig struct {
	// BatchSize is the listing page size.
	BatchSize int
	// MaxConcurrent is the copy window width.
	MaxConcurrent int
	Pause         time.Duration
	RetryCount    int
}

type AppConfig struct {
	Source      EndpointConfig
	Destination EndpointConfig
	Batch       BatchConfig
	WorkDir     string
	MetricsFile string
	ReportFile  string
}

type RunKind int

const (
	RunTransfer RunKind = iota
	RunList
)

type Side string

const (
	SideSource      Side = "source"
	SideDestination Side = "destination"
)

type RunMode struct {
	Kind RunKind
	// Side, Export and OutputPath apply to RunList only.
	Side       Side
	Export     bool
	OutputPath string
}
