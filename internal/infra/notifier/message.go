package notifier

import (
	"fmt"
	"strings"

	"github.com/KasumiMercury/dispatch-watch/internal/domain"
)

const closingLine = "Give them a pat on the back for keeping people safe!"

// RenderMessage describes the most recent incident of the batch. Any other
// incidents of the batch are only counted.
func RenderMessage(responder string, incidents []domain.IncidentRecord) string {
	if len(incidents) == 0 {
		return ""
	}
	latest := incidents[len(incidents)-1]

	var b strings.Builder
	b.WriteString(responder)
	b.WriteString(" is out on a call near ")
	if latest.HasCrossStreets() {
		fmt.Fprintf(&b, "%s - %s!\n", latest.CrossStreets, latest.PrimaryLocation)
	} else {
		fmt.Fprintf(&b, "%s!\n", latest.PrimaryLocation)
	}
	fmt.Fprintf(&b, "Event type: %s\n", latest.EventType)
	fmt.Fprintf(&b, "Alarm level: %s\n", latest.AlarmLevel)

	switch others := len(incidents) - 1; {
	case others == 1:
		b.WriteString("(+1 more new call)\n")
	case others > 1:
		fmt.Fprintf(&b, "(+%d more new calls)\n", others)
	}

	b.WriteString("\n")
	b.WriteString(closingLine)
	return b.String()
}
