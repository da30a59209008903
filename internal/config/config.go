package config

import (
	"flag"
	"os"
	"strconv"
)

// Config holds all server configuration.
type Config struct {
	Addr     string // listen address, e.g. ":8080"
	TLS      bool
	CertFile string
	KeyFile  string

	// Tuning.
	CacheSize         int // LRU cache entries for parsed document snapshots
	MaxRevisions      int // max revisions kept per document
	CompressCutoff    int // revision size threshold for gzip storage (bytes)
	MaxDocumentBytes  int // maximum accepted document size (bytes)
	CollapseThreshold int // unchanged diff hunks above this many lines start collapsed

	// Logging.
	LogFormat string // "json" (default) or "text"
}

func Parse() *Config {
	c := &Config{}
	flag.StringVar(&c.Addr, "addr", ":8080", "listen address")
	flag.BoolVar(&c.TLS, "tls", false, "enable TLS")
	flag.StringVar(&c.CertFile, "cert", "", "TLS certificate file")
	flag.StringVar(&c.KeyFile, "key", "", "TLS key file")

	// Tuning flags.
	flag.IntVar(&c.CacheSize, "cache-size", 128, "LRU cache size for parsed document snapshots")
	flag.IntVar(&c.MaxRevisions, "max-revisions", 50, "max revisions kept per document")
	flag.IntVar(&c.CompressCutoff, "compress-cutoff", 32*1024, "revision size threshold for gzip storage (bytes)")
	flag.IntVar(&c.MaxDocumentBytes, "max-document-bytes", 4*1024*1024, "maximum accepted document size (bytes)")
	flag.IntVar(&c.CollapseThreshold, "collapse-threshold", 3, "unchanged diff hunks above this many lines start collapsed")

	// Logging flags.
	flag.StringVar(&c.LogFormat, "log-format", "json", "log format: json or text")

	flag.Parse()

	// Allow env overrides.
	if v := os.Getenv("YASPD_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("YASPD_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CacheSize = n
		}
	}
	if v := os.Getenv("YASPD_MAX_REVISIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRevisions = n
		}
	}
	if v := os.Getenv("YASPD_COMPRESS_CUTOFF"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CompressCutoff = n
		}
	}
	if v := os.Getenv("YASPD_MAX_DOCUMENT_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDocumentBytes = n
		}
	}
	if v := os.Getenv("YASPD_COLLAPSE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CollapseThreshold = n
		}
	}
	if v := os.Getenv("YASPD_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	return c
}
