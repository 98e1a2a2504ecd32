// Package config loads and validates application settings from defaults, an
// optional YAML file and the environment. Environment variables use the MOM_
// prefix; provider-native variables such as OPENAI_API_KEY are honored when
// the prefixed ones are absent.
package config
