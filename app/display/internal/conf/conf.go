package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

// Radar 内嵌的分析引擎配置，用于通过接口手动触发分析
type Radar struct {
	Source      *Source      `json:"source"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Report      *Report      `json:"report"`
	Db          *DB          `json:"db"`
}

type Source struct {
	BaseUrl        string `json:"base_url"`
	ProbeUrl       string `json:"probe_url"`
	Timeout        int32  `json:"timeout"`
	MaxRetries     int32  `json:"max_retries"`
	Qps            int32  `json:"qps"`
	Rpm            int32  `json:"rpm"`
	EnrichFromSite bool   `json:"enrich_from_site"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Workers     int32 `json:"workers"`
	TaskTimeout int32 `json:"task_timeout"`
}

type Report struct {
	OutputDir string `json:"output_dir"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
