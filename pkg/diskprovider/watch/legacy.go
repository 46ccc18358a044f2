package watch

// NewLegacyWatcher builds the "legacy platform-specific" backend slot
// (historically Unix-native on Linux, NSFW elsewhere). This is a documented
// simplification: it delegates straight to the efficient fsnotify-backed
// backend on every platform we build for (see DESIGN.md). The
// multiplexer's selection logic still picks this backend by name,
// preserving a three-way choice at the call site even though two of the
// three share an implementation today.
func NewLegacyWatcher(folders []Folder, onChange func([]Change), onLogMessage func(LogMessage), verbose bool) RecursiveWatcher {
	return NewEfficientWatcher(folders, onChange, onLogMessage, verbose)
}
