// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Download Pipeline - these keys control where and how episode files are written.
const (
	DownloadPath         = "download.path"
	DownloadQuality      = "download.quality"
	DownloadPause        = "download.pause"
	DownloadAppendExt    = "download.append_extension"
	DownloadWriteHistory = "download.write_history"
)

// Search Discovery - these keys define the behavior of catalog index search.
const (
	SearchLimit = "search.limit"
)

// Diagnostic Logging - these keys configure the persistent log sink.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command Line Interface - these keys define the terminal presentation and update checks.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
