package runstate

// WorkItem is one pending download: the local movie's stable rating key, the
// matched remote folder, and the destination the theme file will be written
// to. The movie itself is re-resolved through the media server by rating key
// when a persisted item is loaded.
type WorkItem struct {
	RatingKey   string
	FolderTitle string
	FolderYear  string
	FolderID    string
	ThemePath   string
}
