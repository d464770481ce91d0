package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModelCSV       = "SeasonOneGameModel.csv"
	DefaultModelOut       = "test.png"
	DefaultModelX         = "Seizure"
	DefaultModelY         = "Eth"
	DefaultDistFile       = "local/data/dist.json"
	DefaultDistOut        = "dist.png"
	DefaultAttributesFile = "local/data/attributes.json"
	DefaultAPsOut         = "APs.png"
	DefaultAlignmentsOut  = "Alignments.png"
	DefaultDataDir        = "local/data/"
	DefaultImgsDir        = "local/imgs/"
	DefaultEncoding       = "dec32"
	DefaultKeyFormat      = "text"
	DefaultRPCURL         = "https://rinkeby.arbitrum.io/rpc"
	DefaultAddressesFile  = "local/addresses.json"
	DefaultArtifactsDir   = "artifacts"
	DefaultInstance       = "1"
	DefaultContract       = "seasonOne"
	DefaultEvent          = "Seized"
	DefaultTxHash         = "0x376cbf499059546b91989e5a1b36f9f02405fa707ffcc52730d50f4a286dfeeb"
	DefaultLogLevel       = "info"
)

type Config struct {
	ModelCSV       string `yaml:"model_csv"`
	ModelOut       string `yaml:"model_out"`
	ModelX         string `yaml:"model_x"`
	ModelY         string `yaml:"model_y"`
	DistFile       string `yaml:"dist_file"`
	DistOut        string `yaml:"dist_out"`
	AttributesFile string `yaml:"attributes_file"`
	APsOut         string `yaml:"aps_out"`
	AlignmentsOut  string `yaml:"alignments_out"`
	DataDir        string `yaml:"data_dir"`
	ImgsDir        string `yaml:"imgs_dir"`
	Encoding       string `yaml:"encoding"`
	Wrap           *bool  `yaml:"wrap"`
	KeyFormat      string `yaml:"key_format"`
	RPCURL         string `yaml:"rpc_url"`
	AddressesFile  string `yaml:"addresses_file"`
	ArtifactsDir   string `yaml:"artifacts_dir"`
	Instance       string `yaml:"instance"`
	Contract       string `yaml:"contract"`
	Event          string `yaml:"event"`
	TxHash         string `yaml:"tx_hash"`
	LogLevel       string `yaml:"log_level"`
}

type Flags struct {
	ModelCSV       string
	ModelOut       string
	ModelX         string
	ModelY         string
	DistFile       string
	DistOut        string
	AttributesFile string
	APsOut         string
	AlignmentsOut  string
	DataDir        string
	ImgsDir        string
	Encoding       string
	Wrap           *bool
	KeyFormat      string
	RPCURL         string
	AddressesFile  string
	ArtifactsDir   string
	Instance       string
	Contract       string
	Event          string
	TxHash         string
	LogLevel       string
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, field := range []*string{
		&cfg.ModelCSV, &cfg.ModelOut, &cfg.ModelX, &cfg.ModelY,
		&cfg.DistFile, &cfg.DistOut,
		&cfg.AttributesFile, &cfg.APsOut, &cfg.AlignmentsOut,
		&cfg.DataDir, &cfg.ImgsDir, &cfg.Encoding, &cfg.KeyFormat,
		&cfg.RPCURL, &cfg.AddressesFile, &cfg.ArtifactsDir,
		&cfg.Instance, &cfg.Contract, &cfg.Event, &cfg.TxHash,
		&cfg.LogLevel,
	} {
		*field = expandEnv(*field)
	}

	return &cfg, nil
}

// pick returns the first non-empty of flag and config value, else def.
func pick(flag, value, def string) string {
	if flag != "" {
		return flag
	}
	if value != "" {
		return value
	}
	return def
}

func (c *Config) GetModelCSV(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.ModelCSV
	}
	return pick(f, c.ModelCSV, DefaultModelCSV)
}

func (c *Config) GetModelOut(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.ModelOut
	}
	return pick(f, c.ModelOut, DefaultModelOut)
}

func (c *Config) GetModelX(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.ModelX
	}
	return pick(f, c.ModelX, DefaultModelX)
}

func (c *Config) GetModelY(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.ModelY
	}
	return pick(f, c.ModelY, DefaultModelY)
}

func (c *Config) GetDistFile(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.DistFile
	}
	return pick(f, c.DistFile, DefaultDistFile)
}

func (c *Config) GetDistOut(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.DistOut
	}
	return pick(f, c.DistOut, DefaultDistOut)
}

func (c *Config) GetAttributesFile(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.AttributesFile
	}
	return pick(f, c.AttributesFile, DefaultAttributesFile)
}

func (c *Config) GetAPsOut(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.APsOut
	}
	return pick(f, c.APsOut, DefaultAPsOut)
}

func (c *Config) GetAlignmentsOut(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.AlignmentsOut
	}
	return pick(f, c.AlignmentsOut, DefaultAlignmentsOut)
}

func (c *Config) GetDataDir(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.DataDir
	}
	return pick(f, c.DataDir, DefaultDataDir)
}

func (c *Config) GetImgsDir(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.ImgsDir
	}
	return pick(f, c.ImgsDir, DefaultImgsDir)
}

func (c *Config) GetEncoding(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.Encoding
	}
	return pick(f, c.Encoding, DefaultEncoding)
}

// GetWrap reports whether values wider than a bitmap row keep their low bits.
// Unset in both flags and config means false.
func (c *Config) GetWrap(flags *Flags) bool {
	if flags != nil && flags.Wrap != nil {
		return *flags.Wrap
	}
	if c.Wrap != nil {
		return *c.Wrap
	}
	return false
}

func (c *Config) GetKeyFormat(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.KeyFormat
	}
	return pick(f, c.KeyFormat, DefaultKeyFormat)
}

func (c *Config) GetRPCURL(flags *Flags) (string, error) {
	var f string
	if flags != nil {
		f = flags.RPCURL
	}
	url := pick(f, c.RPCURL, DefaultRPCURL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") &&
		!strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") &&
		!strings.HasSuffix(url, ".ipc") {
		return "", fmt.Errorf("rpc_url %q must be an http(s), ws(s) or .ipc endpoint", url)
	}
	return url, nil
}

func (c *Config) GetAddressesFile(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.AddressesFile
	}
	return pick(f, c.AddressesFile, DefaultAddressesFile)
}

func (c *Config) GetArtifactsDir(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.ArtifactsDir
	}
	return pick(f, c.ArtifactsDir, DefaultArtifactsDir)
}

func (c *Config) GetInstance(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.Instance
	}
	return pick(f, c.Instance, DefaultInstance)
}

func (c *Config) GetContract(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.Contract
	}
	return pick(f, c.Contract, DefaultContract)
}

func (c *Config) GetEvent(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.Event
	}
	return pick(f, c.Event, DefaultEvent)
}

func (c *Config) GetTxHash(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.TxHash
	}
	return pick(f, c.TxHash, DefaultTxHash)
}

func (c *Config) GetLogLevel(flags *Flags) string {
	var f string
	if flags != nil {
		f = flags.LogLevel
	}
	return pick(f, c.LogLevel, DefaultLogLevel)
}

func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envVar := s[2 : len(s)-1]
		return os.Getenv(envVar)
	}
	return os.ExpandEnv(s)
}
