// Package config defines configuration for the goesmirror CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (GOESMIRROR_ prefix), optionally from a .env file
//   - YAML configuration file
//
// Flags win over environment variables, which win over the file.
//
// # Structure
//
//	type Config struct {
//	    MirrorDir  string
//	    Products   []string
//	    Satellites []string
//	    Workers    int
//	    S3         S3Config
//	}
//
//	type S3Config struct {
//	    Region    string
//	    Endpoint  string
//	    Anonymous bool
//	}
package config
