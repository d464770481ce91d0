package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	configContent := `
model_csv: data/model.csv
data_dir: data/ints
encoding: hex64
rpc_url: http://localhost:8545
instance: "2"
log_level: debug
`
	configPath := filepath.Join(tmpDir, "seekertools.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ModelCSV != "data/model.csv" {
		t.Errorf("ModelCSV = %q, want %q", cfg.ModelCSV, "data/model.csv")
	}
	if cfg.DataDir != "data/ints" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "data/ints")
	}
	if cfg.Encoding != "hex64" {
		t.Errorf("Encoding = %q, want %q", cfg.Encoding, "hex64")
	}
	if cfg.RPCURL != "http://localhost:8545" {
		t.Errorf("RPCURL = %q, want %q", cfg.RPCURL, "http://localhost:8545")
	}
	if cfg.Instance != "2" {
		t.Errorf("Instance = %q, want %q", cfg.Instance, "2")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestGetters_Defaults(t *testing.T) {
	cfg := &Config{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"GetModelCSV", cfg.GetModelCSV(nil), "SeasonOneGameModel.csv"},
		{"GetModelOut", cfg.GetModelOut(nil), "test.png"},
		{"GetModelX", cfg.GetModelX(nil), "Seizure"},
		{"GetModelY", cfg.GetModelY(nil), "Eth"},
		{"GetDistFile", cfg.GetDistFile(nil), "local/data/dist.json"},
		{"GetDistOut", cfg.GetDistOut(nil), "dist.png"},
		{"GetAttributesFile", cfg.GetAttributesFile(nil), "local/data/attributes.json"},
		{"GetAPsOut", cfg.GetAPsOut(nil), "APs.png"},
		{"GetAlignmentsOut", cfg.GetAlignmentsOut(nil), "Alignments.png"},
		{"GetDataDir", cfg.GetDataDir(nil), "local/data/"},
		{"GetImgsDir", cfg.GetImgsDir(nil), "local/imgs/"},
		{"GetEncoding", cfg.GetEncoding(nil), "dec32"},
		{"GetKeyFormat", cfg.GetKeyFormat(nil), "text"},
		{"GetAddressesFile", cfg.GetAddressesFile(nil), "local/addresses.json"},
		{"GetArtifactsDir", cfg.GetArtifactsDir(nil), "artifacts"},
		{"GetInstance", cfg.GetInstance(nil), "1"},
		{"GetContract", cfg.GetContract(nil), "seasonOne"},
		{"GetEvent", cfg.GetEvent(nil), "Seized"},
		{"GetTxHash", cfg.GetTxHash(nil), DefaultTxHash},
		{"GetLogLevel", cfg.GetLogLevel(nil), "info"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s default = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	rpcURL, err := cfg.GetRPCURL(nil)
	if err != nil {
		t.Fatalf("GetRPCURL() error = %v", err)
	}
	if rpcURL != "https://rinkeby.arbitrum.io/rpc" {
		t.Errorf("GetRPCURL default = %q, want %q", rpcURL, "https://rinkeby.arbitrum.io/rpc")
	}
}

func TestGetters_FlagOverrides(t *testing.T) {
	cfg := &Config{
		ModelCSV: "config.csv",
		DataDir:  "config_data",
		Encoding: "dec32",
		RPCURL:   "https://config.example/rpc",
		Instance: "0",
	}

	flags := &Flags{
		ModelCSV: "flag.csv",
		DataDir:  "flag_data",
		Encoding: "hex64",
		RPCURL:   "ws://flag.example/rpc",
		Instance: "2",
	}

	if v := cfg.GetModelCSV(flags); v != "flag.csv" {
		t.Errorf("GetModelCSV = %q, want %q", v, "flag.csv")
	}
	if v := cfg.GetDataDir(flags); v != "flag_data" {
		t.Errorf("GetDataDir = %q, want %q", v, "flag_data")
	}
	if v := cfg.GetEncoding(flags); v != "hex64" {
		t.Errorf("GetEncoding = %q, want %q", v, "hex64")
	}
	if v := cfg.GetInstance(flags); v != "2" {
		t.Errorf("GetInstance = %q, want %q", v, "2")
	}
	rpcURL, err := cfg.GetRPCURL(flags)
	if err != nil {
		t.Fatalf("GetRPCURL() error = %v", err)
	}
	if rpcURL != "ws://flag.example/rpc" {
		t.Errorf("GetRPCURL = %q, want %q", rpcURL, "ws://flag.example/rpc")
	}
}

func TestGetters_ConfigOverDefault(t *testing.T) {
	cfg := &Config{ImgsDir: "out/imgs", Event: "Minted"}

	if v := cfg.GetImgsDir(&Flags{}); v != "out/imgs" {
		t.Errorf("GetImgsDir = %q, want %q", v, "out/imgs")
	}
	if v := cfg.GetEvent(&Flags{}); v != "Minted" {
		t.Errorf("GetEvent = %q, want %q", v, "Minted")
	}
}

func TestGetWrap(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name string
		cfg  *bool
		flag *bool
		want bool
	}{
		{"unset", nil, nil, false},
		{"config", &on, nil, true},
		{"flag over config", &on, &off, false},
		{"flag only", nil, &on, true},
	}

	for _, tt := range tests {
		cfg := &Config{Wrap: tt.cfg}
		if got := cfg.GetWrap(&Flags{Wrap: tt.flag}); got != tt.want {
			t.Errorf("%s: GetWrap = %v, want %v", tt.name, got, tt.want)
		}
	}
	if (&Config{}).GetWrap(nil) {
		t.Error("GetWrap(nil) = true, want false")
	}
}

func TestGetKeyFormat_Precedence(t *testing.T) {
	cfg := &Config{KeyFormat: "json"}
	if v := cfg.GetKeyFormat(&Flags{}); v != "json" {
		t.Errorf("GetKeyFormat = %q, want %q", v, "json")
	}
	if v := cfg.GetKeyFormat(&Flags{KeyFormat: "text"}); v != "text" {
		t.Errorf("GetKeyFormat = %q, want %q", v, "text")
	}
}

func TestLoad_WrapAndKeyFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "seekertools.yaml")
	if err := os.WriteFile(configPath, []byte("wrap: true\nkey_format: json\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Wrap == nil || !*cfg.Wrap {
		t.Errorf("Wrap = %v, want true", cfg.Wrap)
	}
	if cfg.KeyFormat != "json" {
		t.Errorf("KeyFormat = %q, want %q", cfg.KeyFormat, "json")
	}
}

func TestGetRPCURL_InvalidScheme(t *testing.T) {
	cfg := &Config{RPCURL: "rinkeby.arbitrum.io/rpc"}
	_, err := cfg.GetRPCURL(nil)
	if err == nil {
		t.Error("expected error for rpc_url without scheme")
	}
}

func TestGetRPCURL_IPC(t *testing.T) {
	cfg := &Config{RPCURL: "/tmp/geth.ipc"}
	rpcURL, err := cfg.GetRPCURL(nil)
	if err != nil {
		t.Fatalf("GetRPCURL() error = %v", err)
	}
	if rpcURL != "/tmp/geth.ipc" {
		t.Errorf("GetRPCURL = %q, want %q", rpcURL, "/tmp/geth.ipc")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/seekertools.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	configContent := `
rpc_url: [invalid yaml
`
	configPath := filepath.Join(tmpDir, "seekertools.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	_ = os.Setenv("TEST_RPC_URL", "https://env.example/rpc")
	defer func() { _ = os.Unsetenv("TEST_RPC_URL") }()

	configContent := `
rpc_url: ${TEST_RPC_URL}
`
	configPath := filepath.Join(tmpDir, "seekertools.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RPCURL != "https://env.example/rpc" {
		t.Errorf("RPCURL = %q, want %q", cfg.RPCURL, "https://env.example/rpc")
	}
}

func TestLoad_EnvVarExpansionDollarSign(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	_ = os.Setenv("TEST_DATA_ROOT", "/srv/seekers")
	defer func() { _ = os.Unsetenv("TEST_DATA_ROOT") }()

	configContent := `
data_dir: $TEST_DATA_ROOT/data
`
	configPath := filepath.Join(tmpDir, "seekertools.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/srv/seekers/data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/srv/seekers/data")
	}
}
