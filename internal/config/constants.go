package config

import "time"

// Base application details
const AppName = "bitgrid"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "bitgrid.log"    // Used while the TUI owns the terminal

// Status Bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultCols = 32
const DefaultRows = 16
const DefaultFormat = "hex"
const DefaultThreshold = 127.0
const DefaultHistoryLimit = 1024
const SystemClipboard = true
const ShowOutput = true
