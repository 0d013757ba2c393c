package config

// Persisted setting keys. These are also the keys accepted by the overrides file.
const (
	KeyLineTracerEnabled = "lineTracerEnabled"
	KeyFriendPrioritize  = "friendPrioritize"
	KeyHotkeyEnabled     = "hotkeyEnabled"
	KeyFriendsColor      = "friendsColor"
	KeyMarkedPeerColor   = "markedPeerColor"
	KeyOthersColor       = "othersColor"
)

// SettingsStoreConfig contains persistence configuration
type SettingsStoreConfig struct {
	AppName string
}

// SettingsStore is the global persistence configuration
var SettingsStore SettingsStoreConfig

func init() {
	SettingsStore = SettingsStoreConfig{
		AppName: "doomerang-tracer",
	}
}
