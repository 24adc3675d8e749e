package services

import (
	"context"
	"os"
	"time"

	"umsjevari_go/database"
	"umsjevari_go/store"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DependencyStatus describes a single dependency check result.
type DependencyStatus struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// HealthReport aggregates dependency checks for the health endpoint.
type HealthReport struct {
	Status       string             `json:"status"` // ok | degraded
	StorageMode  string             `json:"storage_mode"`
	Dependencies []DependencyStatus `json:"dependencies"`
	CheckedAt    time.Time          `json:"checked_at"`
}

// HealthService performs dependency checks
type HealthService struct{}

func NewHealthService() *HealthService {
	return &HealthService{}
}

// Check runs all dependency checks and builds a report. The service stays
// up in fallback mode, so a failing database marks the report degraded
// rather than unhealthy.
func (hs *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:    "ok",
		CheckedAt: time.Now().UTC(),
	}

	dbStatus := hs.checkDatabase()
	report.Dependencies = append(report.Dependencies, dbStatus)
	if dbStatus.Healthy {
		report.StorageMode = string(store.ModePrimary)
	} else {
		report.StorageMode = string(store.ModeFallback)
		report.Status = "degraded"
	}

	if database.RedisClient != nil {
		report.Dependencies = append(report.Dependencies, hs.checkRedis(ctx))
	}
	if os.Getenv("S3_BUCKET_NAME") != "" {
		report.Dependencies = append(report.Dependencies, hs.checkS3(ctx))
	}

	return report
}

func (hs *HealthService) checkDatabase() DependencyStatus {
	status := DependencyStatus{Name: "mysql"}
	start := time.Now()

	if database.DB == nil {
		status.Error = "not connected"
		return status
	}

	sqlDB, err := database.DB.DB()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	if err := sqlDB.Ping(); err != nil {
		status.Error = err.Error()
		return status
	}

	status.Healthy = true
	status.LatencyMS = time.Since(start).Milliseconds()
	return status
}

func (hs *HealthService) checkRedis(ctx context.Context) DependencyStatus {
	status := DependencyStatus{Name: "redis"}
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := database.RedisClient.Ping(checkCtx).Err(); err != nil {
		status.Error = err.Error()
		return status
	}

	status.Healthy = true
	status.LatencyMS = time.Since(start).Milliseconds()
	return status
}

func (hs *HealthService) checkS3(ctx context.Context) DependencyStatus {
	status := DependencyStatus{Name: "s3"}
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	cfg, err := awscfg.LoadDefaultConfig(checkCtx, awscfg.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		status.Error = err.Error()
		return status
	}

	client := s3.NewFromConfig(cfg)
	bucket := os.Getenv("S3_BUCKET_NAME")
	if _, err := client.HeadBucket(checkCtx, &s3.HeadBucketInput{Bucket: &bucket}); err != nil {
		status.Error = err.Error()
		return status
	}

	status.Healthy = true
	status.LatencyMS = time.Since(start).Milliseconds()
	return status
}
