package model

// Config is the user configuration loaded from a config file. Empty fields are unset.
type Config struct {
	StorePath string
	StoreType string
	Filter    Filter
	Format    string
}
