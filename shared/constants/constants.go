package constants

const VERSION = "1.0.0"

const CLIUserAgent = "shardvault-cli"

// StoreFileName is the encrypted relational store inside a vault directory.
// A directory containing this file is an existing vault.
const StoreFileName = "shards.db"

// SaltFileName holds the raw random salt used to derive the asset key.
// Losing it makes every asset blob permanently undecryptable.
const SaltFileName = ".salt"

// AssetDirName is the subdirectory holding encrypted asset blobs.
const AssetDirName = "assets"

const SaltSize int = 16
const KeySize int = 32
const NonceSize int = 12

// KeyIterations is the PBKDF2 round count for deriving the asset key.
// Changing it invalidates every previously created vault.
const KeyIterations = 100000

// MaxCachedAssets bounds the decrypted asset cache. The bound is the
// contract; eviction order is arbitrary.
const MaxCachedAssets = 50

const LimiterSeconds = 30
const LimiterAttempts = 6

// Vault directory states reported by the status endpoint
const VaultStatusExisting = "existing"
const VaultStatusNew = "new"

// AssetScheme prefixes asset references embedded in shard content.
const AssetScheme = "asset://"

// AssetIDLength is the length of a canonical UUID string, which is what
// the reference scanner expects after AssetScheme.
const AssetIDLength = 36
