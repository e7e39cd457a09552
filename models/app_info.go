package models

// AppInfo describes the protocol a server speaks. Clients compare it with
// their own build before syncing.
type AppInfo struct {
	Version       string `json:"version"`
	SchemaVersion int    `json:"schemaVersion"`
	PullVersion   int    `json:"pullVersion"`
	PushVersion   int    `json:"pushVersion"`
	CVRStrategy   string `json:"cvrStrategy"`
}
