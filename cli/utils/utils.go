package utils

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shardvault/cli/styles"
)

// GenerateTitle formats a view title with the app name prefix.
func GenerateTitle(title string) string {
	return styles.TitleStyle.Render(fmt.Sprintf("ShardVault > %s", title))
}

// GenerateDescriptionSection renders a labeled block of content beneath a
// divider of the given width.
func GenerateDescriptionSection(title, content string, width int) string {
	divider := strings.Repeat("-", width)
	return fmt.Sprintf("%s\n%s\n%s", title, divider, content)
}

// ParseHTTPError turns a non-OK response into an error carrying the status
// code and the server's message body.
func ParseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return fmt.Errorf("%d: %s", resp.StatusCode, resp.Status)
	}

	return fmt.Errorf("%d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// ParseTimestamp converts an RFC 3339 timestamp from the daemon into local
// time. Unparseable values return the zero time.
func ParseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}

	return ts.Local()
}

// GenerateListIdxSpacing returns the spacing that aligns the first list index
// with the widest index in the list.
func GenerateListIdxSpacing(total int) string {
	return strings.Repeat(" ", len(strconv.Itoa(total))-1)
}

// GetListIdxSpacing shrinks the index spacing as the current index gains
// digits.
func GetListIdxSpacing(spacing string, idx, total int) string {
	width := len(strconv.Itoa(total)) - len(strconv.Itoa(idx))
	if width < 0 {
		width = 0
	}

	return strings.Repeat(" ", width)
}

func StrFlag(strVar *string, name string, fallback string, args []string) {
	if len(*strVar) > 0 {
		// This var has already been set
		return
	}

	flagNameA := fmt.Sprintf("-%s", string(name[0]))
	flagNameB := fmt.Sprintf("--%s", name)

	for idx, arg := range args {
		if arg == flagNameA || arg == flagNameB {
			if idx >= len(args)-1 {
				// Invalid flag value
				return
			}
			*strVar = args[idx+1]
			return
		}
	}

	*strVar = fallback
}

func BoolFlag(boolVar *bool, name string, fallback bool, args []string) {
	if *boolVar {
		// This var has already been set
		return
	}

	flagNameA := fmt.Sprintf("-%s", string(name[0]))
	flagNameB := fmt.Sprintf("--%s", name)

	for _, arg := range args {
		if arg == flagNameA || arg == flagNameB {
			*boolVar = true
			return
		}
	}

	*boolVar = fallback
}
