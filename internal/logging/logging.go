package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath names the session log file after the extension and the session
// start time, so concurrent and historic runs never collide.
func LogFilePath(logsDir, extensionName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", extensionName, sessionStart.Format("20060102_150405")),
	)
}
