package configuration

// Configuration is read from BMONEY_* environment variables and then
// overridden by the persistent flags of the command line.
type Configuration struct {
	File    string `usage:"bookkeeping file"`
	Lang    string `usage:"language of the texts, en_US or pt_BR"`
	Csv     bool   `usage:"print listings as csv"`
	Verbose bool   `usage:"log storage activity"`
}
