// Package config turns command line flags into the settings of one library session
// and builds the logger and the optional OpenTelemetry providers from them.
package config
