// Package infra contains the adapters behind the core interfaces: zerolog
// logging, Prometheus and InfluxDB metrics sinks, the Paho MQTT roster
// publisher, Sentry error reporting and the S3 object store used for exports.
package infra
