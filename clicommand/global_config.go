package clicommand

// GlobalConfig holds the flags every command accepts.
type GlobalConfig struct {
	Config    string `cli:"config"`
	Debug     bool   `cli:"debug"`
	LogLevel  string `cli:"log-level"`
	LogFormat string `cli:"log-format"`
	NoColor   bool   `cli:"no-color"`
}

// GenomeConfig holds the flags that say which genome to index.
type GenomeConfig struct {
	Genome          string `cli:"genome"`
	GenomeFile      string `cli:"genome-file" normalize:"filepath" validate:"file-exists"`
	Record          string `cli:"record"`
	Alphabet        string `cli:"alphabet"`
	MaxGenomeLength int    `cli:"max-genome-length"`
}

// MetricsConfig holds the flags that control metrics reporting.
type MetricsConfig struct {
	MetricsDatadog     bool   `cli:"metrics-datadog"`
	MetricsDatadogHost string `cli:"metrics-datadog-host"`
}
