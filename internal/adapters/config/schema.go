package config

// Larderfile represents the structure of the larder.yaml configuration
// file. GC fields are pointers so an absent key falls back to the default
// policy while an explicit zero disables the corresponding sweep.
type Larderfile struct {
	Version string   `yaml:"version"`
	Store   StoreDTO `yaml:"store"`
}

// StoreDTO represents the store section of the configuration.
type StoreDTO struct {
	Root string `yaml:"root"`
	GC   GCDTO  `yaml:"gc"`
}

// GCDTO represents the garbage collection policy in the configuration.
type GCDTO struct {
	AutoGC      *float64 `yaml:"auto_gc"`
	MaxAge      *float64 `yaml:"max_age"`
	MaxSize     *int64   `yaml:"max_size"`
	RecencyBeta *float64 `yaml:"recency_beta"`
}
