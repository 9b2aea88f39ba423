package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plume_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts published posts, labeled by whether they carry an image.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plume_posts_created_total",
		Help: "Total number of posts created",
	}, []string{"with_image"})

	// CommentsCreated counts created comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plume_comments_created_total",
		Help: "Total number of comments created",
	})

	// FollowsCreated counts created follow subscriptions.
	FollowsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plume_follows_created_total",
		Help: "Total number of follow subscriptions created",
	})

	// ImageUploads counts processed image uploads by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plume_image_uploads_total",
		Help: "Total number of post image uploads by outcome",
	}, []string{"outcome"})

	// CacheRequests counts cache lookups by key class and result.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plume_cache_requests_total",
		Help: "Total number of cache lookups by key class and result",
	}, []string{"class", "result"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCacheHit increments the cache hit counter for the key class.
func RecordCacheHit(class string) {
	CacheRequests.WithLabelValues(class, "hit").Inc()
}

// RecordCacheMiss increments the cache miss counter for the key class.
func RecordCacheMiss(class string) {
	CacheRequests.WithLabelValues(class, "miss").Inc()
}
