package cache

// MetadataKeyOpts are the inputs that change a cargo metadata resolution.
type MetadataKeyOpts struct {
	ManifestPath string `json:"manifest_path"`
	ManifestHash string `json:"manifest_hash"`
	LockHash     string `json:"lock_hash"`
	AllFeatures  bool   `json:"all_features"`
	ToolVersion  string `json:"tool_version"`
}

// Keyer derives cache keys.
type Keyer interface {
	// MetadataKey returns the key for a resolved dependency graph.
	MetadataKey(opts MetadataKeyOpts) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MetadataKey returns "metadata:<sha256 of opts>".
func (DefaultKeyer) MetadataKey(opts MetadataKeyOpts) string {
	return hashKey("metadata", opts)
}
