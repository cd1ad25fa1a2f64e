// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"time"
)

const displayDate = "2006-01-02"

// isoLayouts are the ISO-8601 shapes the feed may carry, tried in order.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 timestamp as YYYY-MM-DD in the timestamp's
// own offset. A trailing "Z" is read as +00:00. Anything that does not
// parse is returned unchanged.
func FormatDate(raw string) string {
	s := raw
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayDate)
		}
	}
	return raw
}
