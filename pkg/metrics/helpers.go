package metrics

import (
	"strconv"
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	duration := time.Since(rt.start).Seconds()
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(duration)
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordKafkaMessagesProduced(service, topic string, count int) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Add(float64(count))
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

// UpstreamTimer замеряет один запрос к backend REST API
type UpstreamTimer struct {
	method   string
	endpoint string
	start    time.Time
}

func NewUpstreamTimer(method, endpoint string) *UpstreamTimer {
	return &UpstreamTimer{
		method:   method,
		endpoint: endpoint,
		start:    time.Now(),
	}
}

// Observe записывает длительность и итог запроса
// status == 0 означает сетевую ошибку (ответа не было)
func (ut *UpstreamTimer) Observe(status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(ut.method, ut.endpoint, label).Inc()
	UpstreamRequestDuration.WithLabelValues(ut.method, ut.endpoint).Observe(time.Since(ut.start).Seconds())
}
