package domain

// ConfigField is one KEY=VALUE entry of a retrieval config file.
// Value is written verbatim apart from the writer's quoting rule.
type ConfigField struct {
	Key   string
	Value string
}
