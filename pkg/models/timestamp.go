package models

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// CreationTime converts CreationTimeUnix (milliseconds since epoch, as the
// server reports it) to a time.Time via the protobuf timestamp type,
// keeping the millisecond-to-Timestamp conversion in one place rather than
// scattered across every metadata consumer.
func (m *MetadataReturn) CreationTime() (time.Time, bool) {
	return unixMillisToTime(m.CreationTimeUnix)
}

// LastUpdateTime converts LastUpdateTimeUnix the same way as CreationTime.
func (m *MetadataReturn) LastUpdateTime() (time.Time, bool) {
	return unixMillisToTime(m.LastUpdateTimeUnix)
}

func unixMillisToTime(millis *int64) (time.Time, bool) {
	if millis == nil {
		return time.Time{}, false
	}
	ts := timestamppb.New(time.UnixMilli(*millis))
	return ts.AsTime(), true
}

// timeToUnixMillis is the inverse conversion, used when a caller supplies
// a time.Time for a field the wire represents as unix milliseconds.
func timeToUnixMillis(t time.Time) int64 {
	return timestamppb.New(t).AsTime().UnixMilli()
}
