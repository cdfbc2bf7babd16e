package constants

import "time"

const (
	KafkaBatchTimeout = 10 * time.Millisecond
	KafkaWriteTimeout = 10 * time.Second
)

const (
	DefaultEgressTopic = "egress"
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	HTTPStatusOKMin = 200
	HTTPStatusOKMax = 300
)

// ISO local date-time, no offset. The fractional part is optional on both
// parse and format.
const (
	TimestampLayout = "2006-01-02T15:04:05.999999999"
)

// CloudEvents envelope attributes for the HTTP push sink.
const (
	CeIDPrefix    = "notification-gw-"
	CeSpecVersion = "1.0"
	CeType        = "com.redhat.cloud.notification"
	CeSource      = "notifications-gw"
)

const (
	HealthCheckTimeout = 5 * time.Second
)
