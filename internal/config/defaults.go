package config

const (
	defaultStateDir             = "~/.local/share/themesync/state"
	defaultLogDir               = "~/.local/share/themesync/logs"
	defaultReportDir            = "~/.local/share/themesync/reports"
	defaultPlexURL              = "http://127.0.0.1:32400"
	defaultMovieLibrary         = "Movies"
	defaultDrivePageSize        = 1000
	defaultDrivePageDelay       = 1
	defaultBatchSize            = 5
	defaultBatchDelayMinSeconds = 10
	defaultBatchDelayMaxSeconds = 20
	defaultRefreshDelaySeconds  = 1
	defaultThemeFilename        = "theme.mp3"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Plex: Plex{
			URL:          defaultPlexURL,
			MovieLibrary: defaultMovieLibrary,
		},
		Drive: Drive{
			PageSize:         defaultDrivePageSize,
			PageDelaySeconds: defaultDrivePageDelay,
		},
		Sync: Sync{
			BatchSize:            defaultBatchSize,
			BatchDelayMinSeconds: defaultBatchDelayMinSeconds,
			BatchDelayMaxSeconds: defaultBatchDelayMaxSeconds,
			RefreshDelaySeconds:  defaultRefreshDelaySeconds,
			ThemeFilename:        defaultThemeFilename,
		},
		Paths: Paths{
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
			ReportDir: defaultReportDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
