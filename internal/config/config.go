package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/meridian-wallet/meridiand/pkg/explorer"
	"github.com/meridian-wallet/meridiand/pkg/explorer/blockchain"
)

const (
	// NetworkKey is the bitcoin network to use. Either "mainnet" or "testnet"
	NetworkKey = "NETWORK"
	// ExplorerEndpointKey is the endpoint of the chain-index REST API
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// FeeEndpointKey is the endpoint of the fee-estimates REST API
	FeeEndpointKey = "FEE_ENDPOINT"
	// ExplorerRequestsPerSecondKey caps the request rate against the explorer
	ExplorerRequestsPerSecondKey = "EXPLORER_REQUESTS_PER_SECOND"
	// DatadirKey is the local data directory to store the wallet snapshots
	DatadirKey = "DATADIR"
	// DbTypeKey selects the storage backend, either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// EnableProfilerKey enables the profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines the interval in seconds for printing basic runtime statistics
	StatsIntervalKey = "STATS_INTERVAL"

	// DbLocation is the dir under the datadir holding the databases
	DbLocation = "db"
	// ProfilerLocation is the dir under the datadir holding profiler dumps
	ProfilerLocation = "stats"

	networkMainnet = "mainnet"
	networkTestnet = "testnet"

	dbTypeBadger   = "badger"
	dbTypeInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("meridian", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("MERIDIAN")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, networkMainnet)
	vip.SetDefault(ExplorerEndpointKey, "https://blockchain.info")
	vip.SetDefault(FeeEndpointKey, "https://mempool.space/api")
	vip.SetDefault(ExplorerRequestsPerSecondKey, 10)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DbTypeKey, dbTypeBadger)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// GetNetwork returns the chain parameters of the configured network.
func GetNetwork() *chaincfg.Params {
	if vip.GetString(NetworkKey) == networkTestnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

// GetDatadir returns the configured data directory.
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory holding the databases.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// UseInMemoryDb returns whether the volatile storage backend is selected.
func UseInMemoryDb() bool {
	return GetString(DbTypeKey) == dbTypeInMemory
}

// GetExplorer returns the chain-index client built from the configured
// endpoints.
func GetExplorer() (explorer.Service, error) {
	return blockchain.NewService(blockchain.ServiceOpts{
		APIURL:            GetString(ExplorerEndpointKey),
		FeeAPIURL:         GetString(FeeEndpointKey),
		RequestsPerSecond: GetInt(ExplorerRequestsPerSecondKey),
	})
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	networkName := GetString(NetworkKey)
	if networkName != networkMainnet && networkName != networkTestnet {
		return fmt.Errorf(
			"network must be either '%s' or '%s'",
			networkMainnet, networkTestnet,
		)
	}

	dbType := GetString(DbTypeKey)
	if dbType != dbTypeBadger && dbType != dbTypeInMemory {
		return fmt.Errorf(
			"db type must be either '%s' or '%s'",
			dbTypeBadger, dbTypeInMemory,
		)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
