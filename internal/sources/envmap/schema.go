package envmap

// Config represents the top-level structure of environments.yaml
type Config struct {
	Environments []EnvGroup `yaml:"environments"`
}

// EnvGroup is a named set of origins that host the same application
// across environments (prod, staging, local, ...)
type EnvGroup struct {
	Name    string        `yaml:"name"`
	Origins []OriginEntry `yaml:"origins"`
}

// OriginEntry is one host within an environment group
type OriginEntry struct {
	Host  string `yaml:"host"`            // ex: "staging.example.com" or "localhost:3000"
	Label string `yaml:"label,omitempty"` // ex: "staging", defaults to the host
}
