package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// The counters below track the two side-effecting paths: document
// ingestion and notification dispatch.
var (
	uploadsParsed atomic.Uint64
	uploadsFailed atomic.Uint64

	notificationsSent   atomic.Uint64
	notificationsFailed atomic.Uint64

	dispatchDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncUploadsParsed increments the successfully parsed uploads counter.
func IncUploadsParsed() {
	uploadsParsed.Add(1)
}

// IncUploadsFailed increments the failed uploads counter.
func IncUploadsFailed() {
	uploadsFailed.Add(1)
}

// IncNotificationsSent increments the dispatched notifications counter.
func IncNotificationsSent() {
	notificationsSent.Add(1)
}

// IncNotificationsFailed increments the failed dispatch counter.
func IncNotificationsFailed() {
	notificationsFailed.Add(1)
}

// ObserveDispatchDurationMs records a mail dispatch duration in milliseconds.
func ObserveDispatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	dispatchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "uploads_parsed_total", "Total uploads extracted and parsed", uploadsParsed.Load())
	writeCounter(&buf, "uploads_failed_total", "Total uploads that failed extraction or parsing", uploadsFailed.Load())
	writeCounter(&buf, "notifications_sent_total", "Total notifications dispatched", notificationsSent.Load())
	writeCounter(&buf, "notifications_failed_total", "Total notification dispatch failures", notificationsFailed.Load())
	writeHistogram(&buf, "notification_dispatch_ms", "Mail dispatch duration in milliseconds", dispatchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds for duration callers.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
