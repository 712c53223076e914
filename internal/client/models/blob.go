package models

import (
	"strconv"
	"time"
)

// Blob is a binary attachment addressed by a caller-chosen path.
type Blob struct {
	Path      string
	Data      []byte
	MimeType  string
	Timestamp int64
}

// ImagePath builds the conventional "{childName}/{unixMillis}-{fileName}" path.
func ImagePath(childName, fileName string, at time.Time) string {
	return childName + "/" + formatMillis(at) + "-" + fileName
}

// RecordingPath builds "recordings/recording_{field}_{unixMillis}.webm".
func RecordingPath(field string, at time.Time) string {
	return "recordings/recording_" + field + "_" + formatMillis(at) + ".webm"
}

func formatMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
