// Package influxdb provides the optional entry event history sink.
//
// When enabled, every verification attempt (granted or denied) and every
// registration is written as a point to InfluxDB, giving a queryable
// history of door activity alongside the relational passcode records.
//
// Writes are batched and non-blocking: a slow or unavailable InfluxDB
// never delays the verification hot path. Async write failures are
// surfaced through the SetOnError callback and logged by the caller.
//
// The sink is disabled by default; the service is fully functional
// without it.
package influxdb
