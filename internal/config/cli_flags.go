package config

import "github.com/spf13/cobra"

// Flag names shared between commands and Load
const (
	FlagVerbose   = "verbose"
	FlagQuiet     = "quiet"
	FlagJSON      = "json"
	FlagConfig    = "config"
	FlagTimeout   = "timeout"
	FlagUserAgent = "user-agent"
	FlagProxy     = "proxy"
	FlagFormat    = "format"
	FlagHeader    = "header"
	FlagHost      = "host"
	FlagPort      = "port"
)

// flagKeys maps CLI flags onto configuration keys
var flagKeys = map[string]string{
	FlagJSON:      keyJSON,
	FlagTimeout:   keyTimeout,
	FlagUserAgent: keyUserAgent,
	FlagProxy:     keyProxies,
	FlagFormat:    keyFormat,
	FlagHeader:    keyHeaders,
	FlagHost:      keyHost,
	FlagPort:      keyPort,
}

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP(FlagVerbose, "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP(FlagQuiet, "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool(FlagJSON, false, "Log in JSON format")
	cmd.PersistentFlags().StringArray(FlagProxy, nil, "HTTP proxy to route requests through (repeatable, rotated)")
	cmd.PersistentFlags().Duration(FlagTimeout, DefaultHTTPTimeout, "Timeout for each upstream request")
	cmd.PersistentFlags().String(FlagUserAgent, "", "Custom user agent string")
	cmd.PersistentFlags().String(FlagFormat, "", "Bill document format: xml or html")
	cmd.PersistentFlags().StringArrayP(FlagHeader, "H", nil, "Extra request header (e.g., -H \"Accept-Language: fr\")")
	cmd.PersistentFlags().String(FlagConfig, "", "Path to configuration file (optional)")
}

// RegisterServeFlags registers the listener flags of the serve command
func RegisterServeFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().String(FlagHost, DefaultHost, "Interface to listen on")
	cmd.Flags().Int(FlagPort, DefaultPort, "Port to listen on")
}
