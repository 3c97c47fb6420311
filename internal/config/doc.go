// Package config manages user-level settings stored at ~/.foldergen/config.yaml.
// Settings provide the defaults for the generate command (base directory,
// root folder, category selection, placeholder file name, custom catalog)
// and the log level. Values can also come from FOLDERGEN_* environment
// variables; command-line flags take precedence over both.
package config
