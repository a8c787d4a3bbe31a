package influxdb

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteEntryEvent records the outcome of a verification attempt.
//
// One point per attempt, granted or denied. The write is non-blocking;
// data is batched and sent asynchronously. Points carry an event id so
// duplicate delivery can be detected downstream.
//
// Parameters:
//   - recordID: the passcode record checked (0 when no identity was pending)
//   - name: the record's display name (empty when unnamed or unknown)
//   - granted: whether the attempt succeeded
//   - ts: when the attempt was decided
func (c *Client) WriteEntryEvent(recordID int64, name string, granted bool, ts time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"entry_events",
		map[string]string{
			"record_id": strconv.FormatInt(recordID, 10),
			"granted":   strconv.FormatBool(granted),
		},
		map[string]interface{}{
			"event_id": uuid.NewString(),
			"name":     name,
			"count":    1,
		},
		ts,
	)

	c.writeAPI.WritePoint(point)
}

// WriteRegistrationEvent records the outcome of a registration attempt.
func (c *Client) WriteRegistrationEvent(recordID int64, ok bool, ts time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"registration_events",
		map[string]string{
			"ok": strconv.FormatBool(ok),
		},
		map[string]interface{}{
			"event_id":  uuid.NewString(),
			"record_id": recordID,
			"count":     1,
		},
		ts,
	)

	c.writeAPI.WritePoint(point)
}
