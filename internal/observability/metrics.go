package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "student_activity"

var (
	fileOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "file_operations_total",
		Help:      "File store operations by backend, operation and result.",
	}, []string{"backend", "op", "result"})

	storedBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "stored_bytes_total",
		Help:      "Bytes written to the file store.",
	}, []string{"backend"})

	activitiesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "persistence",
		Name:      "activities_created_total",
		Help:      "Activities inserted by the upsert workflow.",
	})

	photosPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "persistence",
		Name:      "photos_persisted_total",
		Help:      "Photo rows created.",
	})

	filesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upload",
		Name:      "files_rejected_total",
		Help:      "Uploaded files skipped before storage.",
	}, []string{"reason"})

	eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events handed to the message broker.",
	}, []string{"type", "result"})
)

func init() {
	prometheus.MustRegister(fileOperations, storedBytes, activitiesCreated, photosPersisted, filesRejected, eventsPublished)
}

// RecordFileOperation 파일 저장소 호출 결과를 기록합니다
func RecordFileOperation(backend, op string, err error) {
	fileOperations.WithLabelValues(backend, op, result(err)).Inc()
}

// RecordStoredBytes 저장소에 기록된 바이트 수
func RecordStoredBytes(backend string, n int64) {
	if n > 0 {
		storedBytes.WithLabelValues(backend).Add(float64(n))
	}
}

func RecordActivityCreated() {
	activitiesCreated.Inc()
}

func RecordPhotosPersisted(n int) {
	photosPersisted.Add(float64(n))
}

// RecordFilesRejected 크기 초과 등으로 건너뛴 파일 수
func RecordFilesRejected(reason string, n int) {
	if n > 0 {
		filesRejected.WithLabelValues(reason).Add(float64(n))
	}
}

func RecordEventPublished(eventType string, err error) {
	eventsPublished.WithLabelValues(eventType, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
